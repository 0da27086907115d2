package store

import (
	"github.com/RyanColorado04/DjangoSandbox2/internal/models"
)

func (s *Store) CreateCategory(category *models.Category) error {
	query := `INSERT INTO categories (name) VALUES (?)`
	res, err := s.DB.Exec(query, category.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	category.ID = int(id)
	return nil
}

func (s *Store) GetAllCategories() ([]models.Category, error) {
	rows, err := s.DB.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// DeleteCategory removes the category and, via the cascade, its products.
func (s *Store) DeleteCategory(id int) error {
	query := `DELETE FROM categories WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}
