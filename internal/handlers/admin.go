package handlers

import (
	"net/http"
	"strconv"

	"github.com/RyanColorado04/DjangoSandbox2/internal/models"
	"github.com/RyanColorado04/DjangoSandbox2/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type AdminHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request, user *models.User) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Stats":   stats,
		"User":    user,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request, user *models.User) {
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_categories.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	name := r.FormValue("name")
	if name == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Category name is required."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	if err := h.Store.CreateCategory(&models.Category{Name: name}); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving category."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category added."})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// DeleteCategory cascades to the category's products.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteCategory(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting category."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category deleted."})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}
