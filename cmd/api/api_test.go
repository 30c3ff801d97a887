package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/HammadJahangir123/office-hub-pro/internal/config"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
)

var employeeTestColumns = []string{
	"id", "name", "username", "email", "department", "section", "location",
	"computer_name", "serial_number", "ip_address", "specs",
	"monitor_model", "monitor_serial", "keyboard_model", "mouse_model",
	"internet_access", "email_access", "usb_access", "vpn_access",
	"peripherals", "created_by", "created_at", "updated_at",
}

var userTestColumns = []string{"id", "username", "password_hash", "email", "display_name", "role"}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		JWTExpireHours: 1,
	}
}

func TestHealthAndReady(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/employees")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func login(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"username":"`+username+`"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("login decode: %v", err)
	}
	if out.Token == "" {
		t.Fatal("login returned no token")
	}
	return out.Token
}

func TestLoginThenListEmployees(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow(1, "alice", "", "alice@example.com", "Alice", models.RoleViewer))
	mock.ExpectQuery(`FROM employees ORDER BY id LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(employeeTestColumns).
			AddRow(1, "John Doe", "jdoe", "jdoe@example.com", "IT", "Helpdesk", "HQ",
				"PC-042", "SN-1", "10.0.0.5", "i5/16GB",
				"Dell U2419", "MS-1", "Logitech K120", "Logitech M90",
				true, true, false, false,
				"[]", 1, now, now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	token := login(t, srv, "alice")

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET employees: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		Items []models.Employee `json:"items"`
		Total int               `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Name != "John Doe" || out.Total != 1 {
		t.Errorf("unexpected response: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAdminRoutesRejectViewer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow(2, "bob", "", "bob@example.com", "Bob", models.RoleViewer))

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	token := login(t, srv, "bob")

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/network/overview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for viewer on admin route, got %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
