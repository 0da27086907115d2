package store

import (
	"github.com/RyanColorado04/DjangoSandbox2/internal/models"
)

func (s *Store) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO products (category_id, name, price, description, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, product.CategoryID, product.Name, product.Price, product.Description, product.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	product.ID = int(id)
	return nil
}

func (s *Store) GetAllProducts() ([]models.Product, error) {
	query := `
		SELECT p.id, p.category_id, c.name, p.name, p.price, p.description, COALESCE(p.image_url, '') as image_url, p.created_at
		FROM products p
		JOIN categories c ON p.category_id = c.id
		ORDER BY p.created_at DESC
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.CategoryName, &p.Name, &p.Price, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *Store) GetProductByID(id int) (*models.Product, error) {
	query := `
		SELECT p.id, p.category_id, c.name, p.name, p.price, p.description, COALESCE(p.image_url, '') as image_url, p.created_at
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.id = ?
	`
	var p models.Product
	err := s.DB.QueryRow(query, id).Scan(&p.ID, &p.CategoryID, &p.CategoryName, &p.Name, &p.Price, &p.Description, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProduct(product *models.Product) error {
	query := `
		UPDATE products
		SET category_id = ?, name = ?, price = ?, description = ?
		WHERE id = ?
	`
	_, err := s.DB.Exec(query, product.CategoryID, product.Name, product.Price, product.Description, product.ID)
	return err
}

func (s *Store) UpdateProductImage(id int, imageURL string) error {
	query := `UPDATE products SET image_url = ? WHERE id = ?`
	_, err := s.DB.Exec(query, imageURL, id)
	return err
}

func (s *Store) DeleteProduct(id int) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}
