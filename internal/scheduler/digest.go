// Package scheduler runs the periodic audit digest: a cron job that counts
// the last day's audit activity and mails a summary to admins.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/HammadJahangir123/office-hub-pro/internal/notify"
	"github.com/HammadJahangir123/office-hub-pro/internal/repo"
	"github.com/robfig/cron/v3"
)

// Run starts the digest cron with the given expression (e.g. "0 8 * * *") and
// blocks. Returns an error only when the expression does not parse; digest
// failures are logged and the schedule keeps running.
func Run(cronExpr string, auditRepo *repo.AuditRepo, dispatcher *notify.Dispatcher) error {
	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() {
		sendDigest(auditRepo, dispatcher)
	})
	if err != nil {
		return err
	}
	slog.Info("audit digest scheduled", "cron", cronExpr)
	c.Run()
	return nil
}

func sendDigest(auditRepo *repo.AuditRepo, dispatcher *notify.Dispatcher) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	since := time.Now().Add(-24 * time.Hour)
	counts, err := auditRepo.CountSince(ctx, since)
	if err != nil {
		slog.Error("audit digest: count failed", "error", err)
		return
	}
	if len(counts) == 0 {
		slog.Info("audit digest: no activity, skipping")
		return
	}
	dispatcher.AuditDigest(ctx, since, counts)
}
