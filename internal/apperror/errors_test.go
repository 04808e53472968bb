package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := NotFound("product", "p-1")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrNotFound))
}

func TestCheckoutFailed_UnwrapsCause(t *testing.T) {
	err := CheckoutFailed(sql.ErrTxDone)

	assert.True(t, errors.Is(err, ErrCheckoutFailed))
	assert.True(t, errors.Is(err, sql.ErrTxDone))
	assert.Contains(t, err.Error(), "checkout failed")
	assert.Contains(t, err.Error(), sql.ErrTxDone.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{InvalidQuantity(0), http.StatusBadRequest},
		{NotFound("feed", "f"), http.StatusNotFound},
		{InsufficientStock("Duck", 5, 2), http.StatusConflict},
		{EmptyCart(), http.StatusUnprocessableEntity},
		{MissingCustomer(), http.StatusUnprocessableEntity},
		{CheckoutFailed(errors.New("x")), http.StatusConflict},
		{Unauthorized("no"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "EMPTY_CART", KindEmptyCart.String())
	assert.Equal(t, "INTERNAL", KindOf(errors.New("x")).String())
}
