package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmoshkin/clothes_shop/internal/service"
)

func TestHTTPErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		wantCode int
	}{
		{err: service.ErrValidation, wantCode: http.StatusBadRequest},
		{err: service.ErrInvalidAddress, wantCode: http.StatusBadRequest},
		{err: service.ErrNotFound, wantCode: http.StatusNotFound},
		{err: service.ErrInsufficientStock, wantCode: http.StatusConflict},
		{err: service.ErrInvalidOperation, wantCode: http.StatusConflict},
		{err: service.ErrConflict, wantCode: http.StatusConflict},
		{err: service.ErrGatewayFailure, wantCode: http.StatusBadGateway},
		{err: assert.AnError, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		got := httpError(tt.err)
		assert.Equal(t, tt.wantCode, got.Code, "error %v", tt.err)
	}
}

func TestHTTPErrorKeepsWrappedDetail(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("%w: size M of hoodie has 2 left", service.ErrInsufficientStock)

	got := httpError(wrapped)
	assert.Equal(t, http.StatusConflict, got.Code)
	assert.Equal(t, wrapped.Error(), got.Message)
}

func TestHTTPErrorHidesInternalDetail(t *testing.T) {
	t.Parallel()

	got := httpError(fmt.Errorf("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, "internal error", got.Message)
}
