package model

import "time"

// Product categories carried by the catalogue.
const (
	CategoryRing     = "ring"
	CategoryChain    = "chain"
	CategoryBracelet = "bracelet"
)

// ValidCategory reports whether c is one of the known product categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryRing, CategoryChain, CategoryBracelet:
		return true
	}
	return false
}

// Product represents a jewellery item in the catalogue.
// Price is in minor currency units. Images maps a colour to the ordered
// list of image filenames for that colour variant.
type Product struct {
	ID          string              `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	Description string              `json:"description" db:"description"`
	Price       int64               `json:"price" db:"price"`
	Category    string              `json:"category" db:"category"`
	Colors      []string            `json:"colors" db:"colors"`
	Sizes       []string            `json:"sizes" db:"sizes"`
	Images      map[string][]string `json:"images" db:"images"`
	Stock       int                 `json:"stock" db:"stock"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`
}

// HasColor reports whether the product is offered in the given colour.
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// HasSize reports whether the product is offered in the given size.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// ProductUpdate carries a partial product update. Nil fields are left
// untouched.
type ProductUpdate struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	Price       *int64               `json:"price,omitempty"`
	Category    *string              `json:"category,omitempty"`
	Colors      *[]string            `json:"colors,omitempty"`
	Sizes       *[]string            `json:"sizes,omitempty"`
	Images      *map[string][]string `json:"images,omitempty"`
	Stock       *int                 `json:"stock,omitempty"`
}
