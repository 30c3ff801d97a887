package repo

import (
	"context"
	"database/sql"

	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, username, COALESCE(password_hash, ''), email, display_name, role`

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.DisplayName, &u.Role)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, password, email, displayName, role string) (*models.User, error) {
	var hash any
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}

	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, email, display_name, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		username, hash, email, displayName, role,
	)
	return scanUser(row)
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// ==========================
// Update User
// ==========================
func (r *UserRepo) Update(ctx context.Context, id int, email, displayName, role string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE users SET email = $1, display_name = $2, role = $3
		 WHERE id = $4
		 RETURNING `+userColumns,
		email, displayName, role, id,
	)
	return scanUser(row)
}

// ==========================
// Delete User
// ==========================
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.DisplayName, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ==========================
// Admin Directory
// ==========================

// AdminEmails returns the contact addresses of every admin user with a
// non-empty email. This is the notification recipient list.
func (r *UserRepo) AdminEmails(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT email FROM users WHERE role = $1 AND email <> '' ORDER BY email`,
		models.RoleAdmin,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
