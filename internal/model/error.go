package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodePromotionNotFound  = "PROMOTION_NOT_FOUND"
	ErrCodeDuplicateCode      = "DUPLICATE_PROMO_CODE"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidVariant     = "INVALID_VARIANT"
	ErrCodeInvalidCategory    = "INVALID_CATEGORY"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeCheckoutInProgress = "CHECKOUT_IN_PROGRESS"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation with a stable code that
// handlers can map to an HTTP status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "order not found")
	ErrPromotionNotFound  = NewDomainError(ErrCodePromotionNotFound, "promotion not found")
	ErrDuplicateCode      = NewDomainError(ErrCodeDuplicateCode, "a promotion with this code already exists")
	ErrInvalidStatus      = NewDomainError(ErrCodeInvalidStatus, "status must be pending, paid or shipped")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "quantity must be greater than zero")
	ErrInvalidVariant     = NewDomainError(ErrCodeInvalidVariant, "colour or size not offered for this product")
	ErrInvalidCategory    = NewDomainError(ErrCodeInvalidCategory, "category must be ring, chain or bracelet")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "cart is empty")
	ErrCheckoutInProgress = NewDomainError(ErrCodeCheckoutInProgress, "a checkout is already in progress for this session")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "invalid email or password")
)
