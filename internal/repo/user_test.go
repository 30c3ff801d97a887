package repo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var userTestColumns = []string{"id", "username", "password_hash", "email", "display_name", "role"}

func TestUserRepo_Create_HashesPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow(1, "alice", "hash", "alice@example.com", "Alice", models.RoleViewer))

	repo := NewUserRepo(db)
	u, err := repo.Create(context.Background(), "alice", "s3cret", "alice@example.com", "Alice", models.RoleViewer)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID != 1 || u.Username != "alice" {
		t.Errorf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow(1, "alice", string(hash), "alice@example.com", "Alice", models.RoleAdmin))

	repo := NewUserRepo(db)
	u, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) != nil {
		t.Error("stored hash does not match password")
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %q", u.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	if _, err := repo.GetByUsername(context.Background(), "ghost"); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepo(db)
	if err := repo.Delete(context.Background(), 99); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_AdminEmails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT email FROM users WHERE role = \$1 AND email <> ''`).
		WithArgs(models.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).
			AddRow("admin@example.com").
			AddRow("ops@example.com"))

	repo := NewUserRepo(db)
	emails, err := repo.AdminEmails(context.Background())
	if err != nil {
		t.Fatalf("AdminEmails: %v", err)
	}
	if len(emails) != 2 || emails[0] != "admin@example.com" {
		t.Errorf("unexpected emails: %v", emails)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
