package jobs

import (
	"context"
	"fmt"
	"time"

	"nclex_keys/internal/model"
	"nclex_keys/internal/notify"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const digestTimeout = time.Minute

// PendingLister is the part of the enrollment service the digest needs
type PendingLister interface {
	PendingOlderThan(ctx context.Context, age time.Duration) ([]model.PendingEnrollmentSummary, error)
}

// PendingDigest mails staff the enrollments that have waited too long for payment verification
type PendingDigest struct {
	enrollments PendingLister
	mailer      notify.Mailer
	staffEmail  string
	age         time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewPendingDigest(enrollments PendingLister, mailer notify.Mailer, staffEmail string, age time.Duration, logger *zap.Logger) *PendingDigest {
	return &PendingDigest{
		enrollments: enrollments,
		mailer:      mailer,
		staffEmail:  staffEmail,
		age:         age,
		logger:      logger,
		now:         time.Now,
	}
}

// Run sends one digest. It returns the number of enrollments reported.
func (d *PendingDigest) Run(ctx context.Context) (int, error) {
	if d.staffEmail == "" {
		d.logger.Debug("Pending digest skipped, no staff email configured")
		return 0, nil
	}

	pending, err := d.enrollments.PendingOlderThan(ctx, d.age)
	if err != nil {
		return 0, fmt.Errorf("failed to load pending enrollments: %w", err)
	}
	if len(pending) == 0 {
		d.logger.Info("No enrollments awaiting verification")
		return 0, nil
	}

	d.mailer.SendMessages(notify.PendingDigestMessage(d.staffEmail, pending, d.now()))
	d.logger.Info("Pending digest sent", zap.Int("count", len(pending)), zap.String("to", d.staffEmail))
	return len(pending), nil
}

// NewScheduler registers the digest on a cron schedule. The caller starts and stops the scheduler.
func NewScheduler(spec string, digest *PendingDigest, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()
		if _, err := digest.Run(ctx); err != nil {
			logger.Error("Pending digest failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	logger.Info("Pending digest scheduled", zap.String("schedule", spec), zap.Duration("older_than", digest.age))
	return c, nil
}
