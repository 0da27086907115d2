package store

import "database/sql"

type DashboardStats struct {
	TotalProducts   int
	TotalCategories int
	TotalOrders     int
	OpenCarts       int
	ProductCounts   []ProductOrderCount
}

type ProductOrderCount struct {
	ProductID  int
	Name       string
	TimesAdded int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&stats.TotalProducts)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM categories").Scan(&stats.TotalCategories)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE is_ordered = 1").Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE is_ordered = 0").Scan(&stats.OpenCarts)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query(`
		SELECT p.id, p.name, COUNT(oi.id) as times_added
		FROM products p
		LEFT JOIN order_items oi ON p.id = oi.product_id
		GROUP BY p.id
		ORDER BY times_added DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pc ProductOrderCount
		if err := rows.Scan(&pc.ProductID, &pc.Name, &pc.TimesAdded); err != nil {
			return nil, err
		}
		stats.ProductCounts = append(stats.ProductCounts, pc)
	}

	return stats, nil
}
