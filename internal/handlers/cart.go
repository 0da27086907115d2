package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RyanColorado04/DjangoSandbox2/internal/models"
	"github.com/RyanColorado04/DjangoSandbox2/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// AddToCart puts one unit of the product into the user's open order,
// creating the order first if the user has none. Repeated adds of the same
// product bump the existing line's quantity by one. The find-or-create runs
// without a transaction, so two concurrent first adds can race into two
// open orders for the same user.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request, user *models.User) {
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

	order, err := h.Store.GetOpenOrderByUser(user.ID)
	if err != nil {
		slog.Error("Failed to look up cart", "user_id", user.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if order == nil {
		// TotalPrice is written once here and never recomputed from the
		// line items afterwards.
		order = &models.Order{UserID: user.ID, TotalPrice: decimal.Zero}
		if err := h.Store.CreateOrder(order); err != nil {
			slog.Error("Failed to create cart", "user_id", user.ID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	item, err := h.Store.GetOrderItem(order.ID, product.ID)
	if err != nil {
		slog.Error("Failed to look up cart item", "order_id", order.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		item = &models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 1}
		err = h.Store.CreateOrderItem(item)
	} else {
		err = h.Store.IncrementOrderItemQuantity(item.ID)
	}
	if err != nil {
		slog.Error("Failed to save cart item", "order_id", order.ID, "product_id", product.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	session.AddFlash(FlashMessage{Type: "success", Message: product.Name + " added to cart."})
	session.Save(r, w)
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// ViewCart shows the open order and its line items. A user who has never
// added anything has no cart; that is a hard failure, not an empty cart.
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request, user *models.User) {
	order, err := h.Store.GetOpenOrderByUser(user.ID)
	if err != nil {
		slog.Error("Failed to look up cart", "user_id", user.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if order == nil {
		slog.Error("No active cart for user", "user_id", user.ID)
		http.Error(w, "No active cart", http.StatusInternalServerError)
		return
	}

	items, err := h.Store.GetOrderItems(order.ID)
	if err != nil {
		slog.Error("Failed to fetch cart items", "order_id", order.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Order":     order,
		"Items":     items,
		"CartTotal": cartTotal(items),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Checkout flips the open order to placed and renders the confirmation.
// The stored total is left as-is. With no open order this fails the same
// way ViewCart does, which also makes a double checkout a hard failure.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request, user *models.User) {
	order, err := h.Store.GetOpenOrderByUser(user.ID)
	if err != nil {
		slog.Error("Failed to look up cart", "user_id", user.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if order == nil {
		slog.Error("Checkout with no active cart", "user_id", user.ID)
		http.Error(w, "No active cart", http.StatusInternalServerError)
		return
	}

	if err := h.Store.MarkOrderOrdered(order.ID); err != nil {
		slog.Error("Failed to finalize order", "order_id", order.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	order.IsOrdered = true

	items, err := h.Store.GetOrderItems(order.ID)
	if err != nil {
		slog.Error("Failed to fetch order items", "order_id", order.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Order":     order,
		"Items":     items,
		"CartTotal": cartTotal(items),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func cartTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(i.LineTotal())
	}
	return total
}
