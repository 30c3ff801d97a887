// Package notify delivers change notifications to admin users through an
// external mail-sending function. Dispatch is best-effort: it runs after the
// record mutation has committed and failures are logged and swallowed, never
// surfaced to the caller that triggered the update.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/HammadJahangir123/office-hub-pro/internal/diff"
	"github.com/HammadJahangir123/office-hub-pro/internal/metrics"
)

const dispatchTimeout = 10 * time.Second

// AdminDirectory resolves the notification recipient list.
type AdminDirectory interface {
	AdminEmails(ctx context.Context) ([]string, error)
}

// Dispatcher formats employee update diffs and posts them to the mail function.
type Dispatcher struct {
	Directory AdminDirectory
	FnURL     string
	FnToken   string
	Client    *http.Client
}

func NewDispatcher(directory AdminDirectory, fnURL, fnToken string) *Dispatcher {
	return &Dispatcher{
		Directory: directory,
		FnURL:     fnURL,
		FnToken:   fnToken,
		Client:    &http.Client{Timeout: dispatchTimeout},
	}
}

// ChangeRow is one rendered line of the notification body.
type ChangeRow struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

type updatePayload struct {
	Type               string         `json:"type"`
	EmployeeName       string         `json:"employeeName"`
	EmployeeDepartment string         `json:"employeeDepartment"`
	EmployeeSection    string         `json:"employeeSection"`
	ChangedBy          string         `json:"changedBy"`
	ChangedByEmail     string         `json:"changedByEmail"`
	OldData            map[string]any `json:"oldData"`
	NewData            map[string]any `json:"newData"`
	Changes            []ChangeRow    `json:"changes"`
	Recipients         []string       `json:"recipients"`
}

// EmployeeUpdated notifies all admins about a committed employee update.
// No admins or an empty diff is a successful no-op. Safe to call from a
// goroutine; it carries its own timeout and never returns an error.
func (d *Dispatcher) EmployeeUpdated(name, department, section, changedBy, changedByEmail string, oldSnap, newSnap map[string]any) {
	if d.FnURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	recipients, err := d.Directory.AdminEmails(ctx)
	if err != nil {
		slog.Error("notify: admin directory lookup failed", "error", err)
		metrics.IncNotifications("error")
		return
	}
	if len(recipients) == 0 {
		metrics.IncNotifications("skipped")
		return
	}

	// Bookkeeping fields are audit-trail detail, not something admins care about.
	changes := diff.Compute(oldSnap, newSnap, "created_at", "created_by")
	if len(changes) == 0 {
		metrics.IncNotifications("skipped")
		return
	}

	if changedBy == "" {
		changedBy = changedByEmail
	}
	payload := updatePayload{
		Type:               "employee_updated",
		EmployeeName:       name,
		EmployeeDepartment: department,
		EmployeeSection:    section,
		ChangedBy:          changedBy,
		ChangedByEmail:     changedByEmail,
		OldData:            oldSnap,
		NewData:            newSnap,
		Changes:            RenderChanges(changes),
		Recipients:         recipients,
	}

	if err := d.post(ctx, payload); err != nil {
		slog.Error("notify: dispatch failed", "employee", name, "error", err)
		metrics.IncNotifications("error")
		return
	}
	slog.Info("notify: update dispatched", "employee", name, "recipients", len(recipients), "changes", len(changes))
	metrics.IncNotifications("sent")
}

type digestPayload struct {
	Type       string         `json:"type"`
	Since      time.Time      `json:"since"`
	Counts     map[string]int `json:"counts"`
	Recipients []string       `json:"recipients"`
}

// AuditDigest sends a summary of audit activity since the given time to all
// admins. Used by the cron digest job; same best-effort semantics as updates.
func (d *Dispatcher) AuditDigest(ctx context.Context, since time.Time, counts map[string]int) {
	if d.FnURL == "" || len(counts) == 0 {
		return
	}

	recipients, err := d.Directory.AdminEmails(ctx)
	if err != nil {
		slog.Error("notify: admin directory lookup failed", "error", err)
		metrics.IncNotifications("error")
		return
	}
	if len(recipients) == 0 {
		metrics.IncNotifications("skipped")
		return
	}

	payload := digestPayload{Type: "audit_digest", Since: since, Counts: counts, Recipients: recipients}
	if err := d.post(ctx, payload); err != nil {
		slog.Error("notify: digest dispatch failed", "error", err)
		metrics.IncNotifications("error")
		return
	}
	metrics.IncNotifications("sent")
}

func (d *Dispatcher) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.FnURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if d.FnToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.FnToken)
	}

	client := d.Client
	if client == nil {
		client = &http.Client{Timeout: dispatchTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

// StatusError reports a non-2xx response from the mail function.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return "mail function returned status " + strconv.Itoa(e.Code)
}
