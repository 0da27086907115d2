package handlers

import (
	"net/http"
	"strconv"

	"github.com/RyanColorado04/DjangoSandbox2/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type CatalogHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// ListProducts renders every product, unfiltered and unpaginated.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("product_list.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	loggedIn, _ := session.Values["authenticated"].(bool)

	data := map[string]interface{}{
		"Products": products,
		"Flashes":  GetFlash(session),
		"LoggedIn": loggedIn,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// ProductDetail renders a single product, 404 on unknown id.
func (h *CatalogHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid Product ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("product_detail.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Product":   product,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
