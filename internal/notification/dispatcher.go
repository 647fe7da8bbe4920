// Package notification fans out workflow emails. Every send is best effort:
// a failed address is logged and skipped so the rest of the loop still runs,
// and the triggering state change is never rolled back.
package notification

import (
	"context"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/gilberthappi/isange-pro-be/internal/config"
	"go.uber.org/zap"
)

// RecipientFinder enumerates users for broadcast notifications.
type RecipientFinder interface {
	FindByRole(ctx context.Context, role auth.Role) ([]*auth.User, error)
}

type Dispatcher struct {
	users  RecipientFinder
	mailer config.Mailer
	log    *zap.SugaredLogger
}

func NewDispatcher(users *auth.UserRepository, mailer config.Mailer, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{users: users, mailer: mailer, log: log}
}

// NotifyRole emails every user holding the given role, one at a time.
func (d *Dispatcher) NotifyRole(ctx context.Context, role auth.Role, subject, textBody, htmlBody string) {
	users, err := d.users.FindByRole(ctx, role)
	if err != nil {
		d.log.Errorw("failed to enumerate recipients", "role", role, "error", err)
		return
	}
	for _, user := range users {
		if err := d.mailer.SendEmail(ctx, user.Email, subject, textBody, htmlBody); err != nil {
			d.log.Errorw("notification email failed", "email", user.Email, "error", err)
			continue
		}
		d.log.Infow("notification email sent", "email", user.Email)
	}
}

// NotifyAddress sends a single best-effort email.
func (d *Dispatcher) NotifyAddress(ctx context.Context, to, subject, textBody, htmlBody string) {
	if err := d.mailer.SendEmail(ctx, to, subject, textBody, htmlBody); err != nil {
		d.log.Errorw("notification email failed", "email", to, "error", err)
		return
	}
	d.log.Infow("notification email sent", "email", to)
}
