// Package submission provides the collaborators that receive a completed
// registration form from the wizard.
package submission

import (
	"context"
	"time"

	"tenantnotes/internal/registration/models"
	dErrors "tenantnotes/pkg/domain-errors"
)

const DefaultMockDelay = 3 * time.Second

// Mock accepts every registration after a fixed delay.
type Mock struct {
	delay time.Duration
}

func NewMock(delay time.Duration) *Mock {
	return &Mock{delay: delay}
}

func (m *Mock) Submit(ctx context.Context, _ models.RegistrationForm) error {
	if m.delay <= 0 {
		return nil
	}
	t := time.NewTimer(m.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "registration submission cancelled")
	}
}
