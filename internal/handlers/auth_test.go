package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"github.com/HammadJahangir123/office-hub-pro/internal/repo"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &AuthHandler{UserRepo: repo.NewUserRepo(db), Secret: []byte("test-secret"), ExpireHours: 1}
	return h, mock, func() { db.Close() }
}

func TestRegister_MissingUsername(t *testing.T) {
	h, _, cleanup := newAuthHandler(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"a@b.c"}`))
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestRegister(t *testing.T) {
	h, mock, cleanup := newAuthHandler(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "display_name", "role"}).
			AddRow(1, "alice", "hash", "alice@example.com", "Alice", models.RoleViewer))

	body := `{"username":"alice","password":"s3cret","email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	raw := rr.Body.String()
	if strings.Contains(raw, "hash") {
		t.Error("password hash leaked in response")
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Role != models.RoleViewer {
		t.Errorf("expected viewer role, got %q", u.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestLogin(t *testing.T) {
	h, mock, cleanup := newAuthHandler(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "display_name", "role"}).
			AddRow(1, "alice", string(hash), "alice@example.com", "Alice", models.RoleAdmin))

	body := `{"username":"alice","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	token, err := jwt.Parse(out.Token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["role"] != models.RoleAdmin || claims["user_id"] != float64(1) {
		t.Errorf("unexpected claims: %v", claims)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, mock, cleanup := newAuthHandler(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "display_name", "role"}).
			AddRow(1, "alice", string(hash), "alice@example.com", "Alice", models.RoleViewer))

	body := `{"username":"alice","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	h, mock, cleanup := newAuthHandler(t)
	defer cleanup()

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	body := `{"username":"ghost"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}
