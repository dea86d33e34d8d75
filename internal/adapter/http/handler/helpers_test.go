package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixluck/wallet/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrPaymentNotFound, http.StatusNotFound},
		{domain.ErrChestNotFound, http.StatusNotFound},
		{domain.ErrInvalidRequest, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{domain.ErrChestClaimed, http.StatusConflict},
		{domain.ErrChestLocked, http.StatusConflict},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapDomainError(tt.err), tt.err.Error())
	}
}

func TestParseIntQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=50&bad=abc", nil)

	assert.Equal(t, 50, parseIntQuery(r, "limit", 20))
	assert.Equal(t, 20, parseIntQuery(r, "missing", 20))
	assert.Equal(t, 20, parseIntQuery(r, "bad", 20))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "bad input", "details")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"bad input","message":"details"}`, rec.Body.String())
}
