// Package service pairs every employee mutation with its audit entry inside
// one database transaction. Handlers never touch the employee table directly
// for writes: going through this layer is what guarantees no unaudited
// mutation can commit.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/HammadJahangir123/office-hub-pro/internal/diff"
	"github.com/HammadJahangir123/office-hub-pro/internal/metrics"
	"github.com/HammadJahangir123/office-hub-pro/internal/models"
	"github.com/HammadJahangir123/office-hub-pro/internal/repo"
)

// Notifier receives update events after the transaction has committed.
// Implementations are best-effort; the service never waits on them.
type Notifier interface {
	EmployeeUpdated(name, department, section, changedBy, changedByEmail string, oldSnap, newSnap map[string]any)
}

// EmployeeService wraps employee mutations with audit writes.
type EmployeeService struct {
	DB        *sql.DB
	Employees *repo.EmployeeRepo
	Audit     *repo.AuditRepo
	Users     *repo.UserRepo

	// Notifier may be nil (notifications disabled).
	Notifier Notifier
}

func NewEmployeeService(db *sql.DB, employees *repo.EmployeeRepo, audit *repo.AuditRepo, users *repo.UserRepo, notifier Notifier) *EmployeeService {
	return &EmployeeService{DB: db, Employees: employees, Audit: audit, Users: users, Notifier: notifier}
}

// actor returns the acting user's identity for the audit row. A failed lookup
// degrades to empty fields: identity is best-effort, the audit write is not.
func (s *EmployeeService) actor(ctx context.Context, actorID int) (email, name string) {
	u, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		slog.Warn("audit: actor lookup failed", "actor_id", actorID, "error", err)
		return "", ""
	}
	name = u.DisplayName
	if name == "" {
		name = u.Username
	}
	return u.Email, name
}

// Create inserts an employee and its "created" audit entry in one transaction.
func (s *EmployeeService) Create(ctx context.Context, actorID int, in models.EmployeeInput) (models.Employee, error) {
	var emp models.Employee
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		emp, err = s.Employees.Create(ctx, tx, in, actorID)
		if err != nil {
			return err
		}

		newData, err := json.Marshal(diff.Snapshot(emp))
		if err != nil {
			return err
		}
		email, name := s.actor(ctx, actorID)
		entry := &models.AuditEntry{
			RecordID:   &emp.ID,
			Action:     models.ActionCreated,
			ActorID:    actorID,
			ActorEmail: email,
			ActorName:  name,
			NewData:    newData,
		}
		return s.Audit.Insert(ctx, tx, entry)
	})
	if err != nil {
		return models.Employee{}, err
	}
	metrics.IncAuditEntries(models.ActionCreated)
	return emp, nil
}

// Update applies new field values and writes an "updated" audit entry with
// both snapshots and the computed diff. The entry is written even when the
// diff is empty; only the notification is suppressed (the dispatcher no-ops
// on an empty diff). Notification runs after commit, fire-and-forget.
func (s *EmployeeService) Update(ctx context.Context, actorID, id int, in models.EmployeeInput) (models.Employee, error) {
	var oldSnap, newSnap map[string]any
	var updated models.Employee
	var changedBy, changedByEmail string

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		old, err := s.Employees.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		updated, err = s.Employees.Update(ctx, tx, id, in)
		if err != nil {
			return err
		}

		oldSnap = diff.Snapshot(old)
		newSnap = diff.Snapshot(updated)
		changes := diff.Compute(oldSnap, newSnap)

		oldData, err := json.Marshal(oldSnap)
		if err != nil {
			return err
		}
		newData, err := json.Marshal(newSnap)
		if err != nil {
			return err
		}
		changesData, err := json.Marshal(changes)
		if err != nil {
			return err
		}

		changedByEmail, changedBy = s.actor(ctx, actorID)
		entry := &models.AuditEntry{
			RecordID:   &updated.ID,
			Action:     models.ActionUpdated,
			ActorID:    actorID,
			ActorEmail: changedByEmail,
			ActorName:  changedBy,
			OldData:    oldData,
			NewData:    newData,
			Changes:    changesData,
		}
		return s.Audit.Insert(ctx, tx, entry)
	})
	if err != nil {
		return models.Employee{}, err
	}
	metrics.IncAuditEntries(models.ActionUpdated)

	// The mutation is committed; notification is out-of-band and best-effort.
	if s.Notifier != nil {
		go s.Notifier.EmployeeUpdated(updated.Name, updated.Department, updated.Section,
			changedBy, changedByEmail, oldSnap, newSnap)
	}
	return updated, nil
}

// Delete removes an employee. The "deleted" audit entry is inserted before
// the row is removed so it captures the pre-deletion snapshot while the
// record_id reference is still valid; the FK's SET NULL then clears the
// reference when the row goes away in the same commit.
func (s *EmployeeService) Delete(ctx context.Context, actorID, id int) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		old, err := s.Employees.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		oldData, err := json.Marshal(diff.Snapshot(old))
		if err != nil {
			return err
		}
		email, name := s.actor(ctx, actorID)
		entry := &models.AuditEntry{
			RecordID:   &old.ID,
			Action:     models.ActionDeleted,
			ActorID:    actorID,
			ActorEmail: email,
			ActorName:  name,
			OldData:    oldData,
		}
		if err := s.Audit.Insert(ctx, tx, entry); err != nil {
			return err
		}

		return s.Employees.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	metrics.IncAuditEntries(models.ActionDeleted)
	return nil
}

func (s *EmployeeService) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			slog.Error("tx rollback failed", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}
