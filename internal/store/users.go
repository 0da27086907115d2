package store

import (
	"database/sql"

	"github.com/RyanColorado04/DjangoSandbox2/internal/models"
)

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT id, username, password, is_admin FROM users WHERE username = ?`
	row := s.DB.QueryRow(query, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.IsAdmin); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(id int) (*models.User, error) {
	query := `SELECT id, username, password, is_admin FROM users WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.IsAdmin); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser is mainly for seeding via the CLI
func (s *Store) CreateUser(username, hashedPassword string, isAdmin bool) error {
	query := `INSERT INTO users (username, password, is_admin) VALUES (?, ?, ?)`
	_, err := s.DB.Exec(query, username, hashedPassword, isAdmin)
	return err
}
