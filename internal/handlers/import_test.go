package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"github.com/HammadJahangir123/office-hub-pro/internal/repo"
	"github.com/HammadJahangir123/office-hub-pro/internal/service"
)

func newImportHandler(t *testing.T) (*ImportHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	svc := service.NewEmployeeService(db, repo.NewEmployeeRepo(db), repo.NewAuditRepo(db), repo.NewUserRepo(db), nil)
	return &ImportHandler{Service: svc}, mock, func() { db.Close() }
}

func expectAuditedCreate(mock sqlmock.Sqlmock, id int, name string, now time.Time) {
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO employees`).
		WillReturnRows(sqlmock.NewRows(employeeTestColumns).
			AddRow(employeeTestRow(id, name, 2, now)...))
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "display_name", "role"}).
			AddRow(2, "admin", "", "admin@example.com", "Admin", models.RoleAdmin))
	mock.ExpectQuery(`INSERT INTO audit_log`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()
}

func TestImportEmployees(t *testing.T) {
	h, mock, cleanup := newImportHandler(t)
	defer cleanup()

	now := time.Now()
	expectAuditedCreate(mock, 1, "John Doe", now)
	expectAuditedCreate(mock, 2, "Jane Roe", now)

	csv := strings.Join([]string{
		"Employee Name,Dept,Internet",
		"John Doe,IT,Yes",
		",HR,No",
		"Jane Roe,HR,No",
	}, "\n")
	req := withUser(httptest.NewRequest(http.MethodPost, "/v1/employees/import", strings.NewReader(csv)), 2, models.RoleAdmin)
	rr := httptest.NewRecorder()
	h.ImportEmployees(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Created int `json:"created"`
		Failed  int `json:"failed"`
		Errors  []struct {
			Row   int    `json:"row"`
			Error string `json:"error"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Created != 2 || out.Failed != 1 {
		t.Errorf("expected 2 created / 1 failed, got %d / %d", out.Created, out.Failed)
	}
	if len(out.Errors) != 1 || out.Errors[0].Row != 3 || out.Errors[0].Error != "missing name" {
		t.Errorf("unexpected errors: %+v", out.Errors)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestImportEmployees_BadHeader(t *testing.T) {
	h, _, cleanup := newImportHandler(t)
	defer cleanup()

	req := withUser(httptest.NewRequest(http.MethodPost, "/v1/employees/import", strings.NewReader("foo,bar\n1,2\n")), 2, models.RoleAdmin)
	rr := httptest.NewRecorder()
	h.ImportEmployees(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}
