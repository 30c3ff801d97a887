package repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"github.com/google/uuid"
)

var auditTestColumns = []string{
	"id", "record_id", "action", "actor_id", "actor_email", "actor_name",
	"old_data", "new_data", "changes", "created_at",
}

func TestAuditRepo_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO audit_log`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	repo := NewAuditRepo(db)
	recordID := 42
	entry := &models.AuditEntry{
		RecordID:   &recordID,
		Action:     models.ActionUpdated,
		ActorID:    1,
		ActorEmail: "admin@example.com",
		ActorName:  "Admin",
		Changes:    json.RawMessage(`{"department":{"old":"IT","new":"HR"}}`),
	}
	if err := repo.Insert(context.Background(), db, entry); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Error("expected entry ID to be assigned")
	}
	if !entry.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, entry.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuditRepo_List_Admin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM audit_log ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(auditTestColumns).
			AddRow(uuid.New(), 42, models.ActionUpdated, 1, "admin@example.com", "Admin",
				`{"name":"Old"}`, `{"name":"New"}`, `{"name":{"old":"Old","new":"New"}}`, now).
			AddRow(uuid.New(), nil, models.ActionDeleted, 2, "bob@example.com", "Bob",
				`{"name":"Gone"}`, nil, nil, now))

	repo := NewAuditRepo(db)
	entries, err := repo.List(context.Background(), 1, true, 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RecordID == nil || *entries[0].RecordID != 42 {
		t.Errorf("expected record_id 42, got %v", entries[0].RecordID)
	}
	if entries[1].RecordID != nil {
		t.Errorf("expected nil record_id for deleted-record entry, got %v", *entries[1].RecordID)
	}
	if len(entries[1].OldData) == 0 {
		t.Error("expected old_data snapshot to survive record deletion")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuditRepo_List_NonAdminScopedToActor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM audit_log WHERE actor_id = \$3 ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0, 7).
		WillReturnRows(sqlmock.NewRows(auditTestColumns).
			AddRow(uuid.New(), 5, models.ActionCreated, 7, "carol@example.com", "Carol",
				nil, `{"name":"New Hire"}`, nil, now))

	repo := NewAuditRepo(db)
	entries, err := repo.List(context.Background(), 7, false, 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].ActorID != 7 {
		t.Errorf("unexpected entries: %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuditRepo_List_ClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM audit_log ORDER BY created_at DESC`).
		WithArgs(ListMaxLimit, 0).
		WillReturnRows(sqlmock.NewRows(auditTestColumns))

	repo := NewAuditRepo(db)
	if _, err := repo.List(context.Background(), 1, true, 100000, 0); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuditRepo_CountSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	since := time.Now().Add(-24 * time.Hour)
	mock.ExpectQuery(`SELECT action, COUNT\(\*\) FROM audit_log WHERE created_at >= \$1 GROUP BY action`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"action", "count"}).
			AddRow(models.ActionCreated, 3).
			AddRow(models.ActionUpdated, 5))

	repo := NewAuditRepo(db)
	counts, err := repo.CountSince(context.Background(), since)
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if counts[models.ActionCreated] != 3 || counts[models.ActionUpdated] != 5 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
