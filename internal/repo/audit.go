package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"github.com/google/uuid"
)

// ListMaxLimit caps audit reads; entries beyond the cap are not guaranteed visible.
const ListMaxLimit = 200

// AuditRepo persists audit log entries. Entries are insert-only.
type AuditRepo struct {
	DB *sql.DB
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{DB: db}
}

// Insert writes one audit entry. q must be the same transaction as the record
// mutation: if this insert fails the whole mutation rolls back, so no change
// can commit unaudited. Fills in the entry ID.
func (r *AuditRepo) Insert(ctx context.Context, q Querier, e *models.AuditEntry) error {
	e.ID = uuid.New()
	var recordID any
	if e.RecordID != nil {
		recordID = *e.RecordID
	}
	return q.QueryRowContext(ctx,
		`INSERT INTO audit_log (id, record_id, action, actor_id, actor_email, actor_name, old_data, new_data, changes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		e.ID, recordID, e.Action, e.ActorID, e.ActorEmail, e.ActorName,
		nullableJSON(e.OldData), nullableJSON(e.NewData), nullableJSON(e.Changes),
	).Scan(&e.CreatedAt)
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return []byte(b)
}

// List returns recent audit entries, newest first. Admins see everything;
// other callers only see entries they authored.
func (r *AuditRepo) List(ctx context.Context, actorID int, isAdmin bool, limit, offset int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > ListMaxLimit {
		limit = ListMaxLimit
	}

	query := `SELECT id, record_id, action, actor_id, actor_email, actor_name, old_data, new_data, changes, created_at
		FROM audit_log`
	args := []any{}
	if !isAdmin {
		query += ` WHERE actor_id = $3`
		args = append(args, limit, offset, actorID)
	} else {
		args = append(args, limit, offset)
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var recordID sql.NullInt64
		var oldData, newData, changes []byte
		if err := rows.Scan(&e.ID, &recordID, &e.Action, &e.ActorID, &e.ActorEmail, &e.ActorName,
			&oldData, &newData, &changes, &e.CreatedAt); err != nil {
			return nil, err
		}
		if recordID.Valid {
			id := int(recordID.Int64)
			e.RecordID = &id
		}
		e.OldData = oldData
		e.NewData = newData
		e.Changes = changes
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountSince returns audit entry counts by action since the given time.
// Used by the daily digest.
func (r *AuditRepo) CountSince(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT action, COUNT(*) FROM audit_log WHERE created_at >= $1 GROUP BY action`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err != nil {
			return nil, err
		}
		counts[action] = n
	}
	return counts, rows.Err()
}
