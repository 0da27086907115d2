package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addToCartRequest(productID int) *http.Request {
	r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/cart/add/%d", productID), nil)
	r.SetPathValue("id", strconv.Itoa(productID))
	return r
}

func TestAddToCartCreatesOrderAndItem(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	p := env.seedProduct(t, "Wool Bundle", "12.50")
	cookies := env.loginCookies(t, user.ID)

	handler := env.auth.RequireUser(env.cart.AddToCart)
	w := doRequest(handler, addToCartRequest(p.ID), cookies)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))

	order, err := env.store.GetOpenOrderByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.False(t, order.IsOrdered)

	items, err := env.store.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	p := env.seedProduct(t, "Wool Bundle", "12.50")
	cookies := env.loginCookies(t, user.ID)

	handler := env.auth.RequireUser(env.cart.AddToCart)
	doRequest(handler, addToCartRequest(p.ID), cookies)
	doRequest(handler, addToCartRequest(p.ID), cookies)

	order, err := env.store.GetOpenOrderByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, order)

	items, err := env.store.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartSecondProductJoinsSameOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	p1 := env.seedProduct(t, "Wool Bundle", "12.50")
	p2 := env.seedProduct(t, "Cotton Bundle", "9.00")
	cookies := env.loginCookies(t, user.ID)

	handler := env.auth.RequireUser(env.cart.AddToCart)
	doRequest(handler, addToCartRequest(p1.ID), cookies)
	doRequest(handler, addToCartRequest(p1.ID), cookies)
	doRequest(handler, addToCartRequest(p2.ID), cookies)

	order, err := env.store.GetOpenOrderByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, order)

	items, err := env.store.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	quantities := map[int]int{}
	for _, i := range items {
		quantities[i.ProductID] = i.Quantity
	}
	assert.Equal(t, 2, quantities[p1.ID])
	assert.Equal(t, 1, quantities[p2.ID])
}

func TestAddToCartUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	cookies := env.loginCookies(t, user.ID)

	handler := env.auth.RequireUser(env.cart.AddToCart)
	w := doRequest(handler, addToCartRequest(9999), cookies)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToCartUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Wool Bundle", "12.50")

	handler := env.auth.RequireUser(env.cart.AddToCart)
	w := doRequest(handler, addToCartRequest(p.ID), nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// No order state may be created by an anonymous caller.
	var count int
	require.NoError(t, env.store.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count))
	assert.Zero(t, count)
}

func TestViewCartWithoutCartFails(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	cookies := env.loginCookies(t, user.ID)

	handler := env.auth.RequireUser(env.cart.ViewCart)
	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := doRequest(handler, r, cookies)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestViewCartRendersItems(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	p := env.seedProduct(t, "Wool Bundle", "12.50")
	cookies := env.loginCookies(t, user.ID)

	addHandler := env.auth.RequireUser(env.cart.AddToCart)
	doRequest(addHandler, addToCartRequest(p.ID), cookies)
	doRequest(addHandler, addToCartRequest(p.ID), cookies)

	viewHandler := env.auth.RequireUser(env.cart.ViewCart)
	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := doRequest(viewHandler, r, cookies)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Wool Bundle")
	assert.Contains(t, body, "25.00") // 2 x 12.50, totalled from the lines
}

func TestCheckoutPlacesOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	p := env.seedProduct(t, "Wool Bundle", "12.50")
	cookies := env.loginCookies(t, user.ID)

	addHandler := env.auth.RequireUser(env.cart.AddToCart)
	doRequest(addHandler, addToCartRequest(p.ID), cookies)

	checkoutHandler := env.auth.RequireUser(env.cart.Checkout)
	r := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	w := doRequest(checkoutHandler, r, cookies)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "has been placed")

	// The cart is gone; the placed order stays placed.
	order, err := env.store.GetOpenOrderByUser(user.ID)
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestCheckoutTwiceFailsSecondTime(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	p := env.seedProduct(t, "Wool Bundle", "12.50")
	cookies := env.loginCookies(t, user.ID)

	addHandler := env.auth.RequireUser(env.cart.AddToCart)
	doRequest(addHandler, addToCartRequest(p.ID), cookies)

	checkoutHandler := env.auth.RequireUser(env.cart.Checkout)
	w := doRequest(checkoutHandler, httptest.NewRequest(http.MethodPost, "/checkout", nil), cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(checkoutHandler, httptest.NewRequest(http.MethodPost, "/checkout", nil), cookies)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNewCartAfterCheckout(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret")
	p := env.seedProduct(t, "Wool Bundle", "12.50")
	cookies := env.loginCookies(t, user.ID)

	addHandler := env.auth.RequireUser(env.cart.AddToCart)
	checkoutHandler := env.auth.RequireUser(env.cart.Checkout)

	doRequest(addHandler, addToCartRequest(p.ID), cookies)
	first, err := env.store.GetOpenOrderByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	doRequest(checkoutHandler, httptest.NewRequest(http.MethodPost, "/checkout", nil), cookies)

	// Adding again starts a fresh cart, never reopening the placed order.
	doRequest(addHandler, addToCartRequest(p.ID), cookies)
	second, err := env.store.GetOpenOrderByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)

	items, err := env.store.GetOrderItems(second.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}
