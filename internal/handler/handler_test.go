package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"labelia/internal/checkout"
	"labelia/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDomainError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "product not found maps to 404",
			err:        model.ErrProductNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   model.ErrCodeProductNotFound,
		},
		{
			name:       "order not found maps to 404",
			err:        model.ErrOrderNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   model.ErrCodeOrderNotFound,
		},
		{
			name:       "duplicate code maps to 409",
			err:        model.ErrDuplicateCode,
			wantStatus: http.StatusConflict,
			wantCode:   model.ErrCodeDuplicateCode,
		},
		{
			name:       "checkout in progress maps to 409",
			err:        model.ErrCheckoutInProgress,
			wantStatus: http.StatusConflict,
			wantCode:   model.ErrCodeCheckoutInProgress,
		},
		{
			name:       "empty cart maps to 409",
			err:        model.ErrEmptyCart,
			wantStatus: http.StatusConflict,
			wantCode:   model.ErrCodeEmptyCart,
		},
		{
			name:       "invalid credentials maps to 401",
			err:        model.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantCode:   model.ErrCodeInvalidCredentials,
		},
		{
			name:       "invalid variant maps to 400",
			err:        model.ErrInvalidVariant,
			wantStatus: http.StatusBadRequest,
			wantCode:   model.ErrCodeInvalidVariant,
		},
		{
			name:       "missing contact field maps to 400",
			err:        &checkout.ValidationError{Field: "email"},
			wantStatus: http.StatusBadRequest,
			wantCode:   model.ErrCodeMissingField,
		},
		{
			name:       "unexpected error maps to 500",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   model.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			writeDomainError(rec, tt.err, zerolog.Nop())

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp model.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}
}
