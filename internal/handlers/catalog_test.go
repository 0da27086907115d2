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

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Wool Bundle", "12.50")

	r := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := doRequest(env.catalog.ListProducts, r, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wool Bundle")
	assert.Contains(t, w.Body.String(), "12.50")
}

func TestListProductsEmpty(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := doRequest(env.catalog.ListProducts, r, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No products yet")
}

func TestProductDetail(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Wool Bundle", "12.50")

	r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", p.ID), nil)
	r.SetPathValue("id", strconv.Itoa(p.ID))
	w := doRequest(env.catalog.ProductDetail, r, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wool Bundle")
	assert.Contains(t, w.Body.String(), "Test Category")
}

func TestProductDetailNotFound(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
	r.SetPathValue("id", "9999")
	w := doRequest(env.catalog.ProductDetail, r, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductDetailBadID(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	r.SetPathValue("id", "abc")
	w := doRequest(env.catalog.ProductDetail, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
