package store

import (
	"database/sql"

	"github.com/RyanColorado04/DjangoSandbox2/internal/models"
)

// GetOpenOrderByUser returns the user's cart, i.e. the order with
// is_ordered = 0. Returns (nil, nil) when the user has no open cart.
// There is no uniqueness guard on open orders; if more than one exists
// the most recent wins.
func (s *Store) GetOpenOrderByUser(userID int) (*models.Order, error) {
	query := `
		SELECT id, user_id, total_price, ordered_date, is_ordered
		FROM orders
		WHERE user_id = ? AND is_ordered = 0
		ORDER BY id DESC
		LIMIT 1
	`
	var o models.Order
	err := s.DB.QueryRow(query, userID).Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.OrderedDate, &o.IsOrdered)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (s *Store) CreateOrder(order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, total_price, ordered_date, is_ordered)
		VALUES (?, ?, CURRENT_TIMESTAMP, ?)
	`
	res, err := s.DB.Exec(query, order.UserID, order.TotalPrice, order.IsOrdered)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = int(id)
	return nil
}

// GetOrderItem returns the line item for (order, product), or (nil, nil)
// when the product is not in the order yet.
func (s *Store) GetOrderItem(orderID, productID int) (*models.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity FROM order_items WHERE order_id = ? AND product_id = ?`
	var i models.OrderItem
	err := s.DB.QueryRow(query, orderID, productID).Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (s *Store) CreateOrderItem(item *models.OrderItem) error {
	query := `INSERT INTO order_items (order_id, product_id, quantity) VALUES (?, ?, ?)`
	res, err := s.DB.Exec(query, item.OrderID, item.ProductID, item.Quantity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = int(id)
	return nil
}

func (s *Store) IncrementOrderItemQuantity(id int) error {
	query := `UPDATE order_items SET quantity = quantity + 1 WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}

func (s *Store) GetOrderItems(orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, p.name, p.price, COALESCE(p.image_url, '') as image_url
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id
	`
	rows, err := s.DB.Query(query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var i models.OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity, &i.ProductName, &i.ProductPrice, &i.ProductImageURL); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, nil
}

// MarkOrderOrdered finalizes a cart. The order keeps whatever total_price it
// was created with; nothing recomputes it from the line items.
func (s *Store) MarkOrderOrdered(id int) error {
	query := `UPDATE orders SET is_ordered = 1 WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}

func (s *Store) GetAllOrders(limit, offset int) ([]models.Order, error) {
	query := `
		SELECT id, user_id, total_price, ordered_date, is_ordered
		FROM orders
		ORDER BY ordered_date DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.DB.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.OrderedDate, &o.IsOrdered); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *Store) GetTotalOrdersCount() (int, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
