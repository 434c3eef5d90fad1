package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tenantnotes/internal/registration/domaincheck"
	"tenantnotes/internal/registration/models"
	"tenantnotes/internal/registration/wizard"
)

type noopSubmitter struct{}

func (noopSubmitter) Submit(context.Context, models.RegistrationForm) error { return nil }

type WizardStoreSuite struct {
	suite.Suite
	ctx context.Context
}

func TestWizardStoreSuite(t *testing.T) {
	suite.Run(t, new(WizardStoreSuite))
}

func (s *WizardStoreSuite) SetupTest() {
	s.ctx = context.Background()
}

func newWizard(id string) *wizard.Wizard {
	return wizard.New(id, domaincheck.NewInMemoryRegistry(), noopSubmitter{})
}

func (s *WizardStoreSuite) TestPutAndGet() {
	st := New(time.Minute, time.Minute)
	w := newWizard("w1")
	st.Put(s.ctx, "browser-1", w)

	got, ok := st.Get(s.ctx, "browser-1")
	s.Require().True(ok)
	s.Same(w, got)

	_, ok = st.Get(s.ctx, "browser-2")
	s.False(ok)
}

func (s *WizardStoreSuite) TestReplacingClosesPrevious() {
	st := New(time.Minute, time.Minute)
	first := newWizard("w1")
	st.Put(s.ctx, "browser-1", first)
	st.Put(s.ctx, "browser-1", newWizard("w2"))

	s.True(first.Closed())
	got, ok := st.Get(s.ctx, "browser-1")
	s.Require().True(ok)
	s.Equal("w2", got.ID())
}

func (s *WizardStoreSuite) TestDeleteTearsDown() {
	st := New(time.Minute, time.Minute)
	w := newWizard("w1")
	st.Put(s.ctx, "browser-1", w)
	st.Delete(s.ctx, "browser-1")

	s.True(w.Closed())
	_, ok := st.Get(s.ctx, "browser-1")
	s.False(ok)
}

func (s *WizardStoreSuite) TestDeleteIfLeavesReplacementInPlace() {
	st := New(time.Minute, time.Minute)
	first := newWizard("w1")
	st.Put(s.ctx, "browser-1", first)
	second := newWizard("w2")
	st.Put(s.ctx, "browser-1", second)

	s.False(st.DeleteIf(s.ctx, "browser-1", first))
	s.False(second.Closed())
	got, ok := st.Get(s.ctx, "browser-1")
	s.Require().True(ok)
	s.Same(second, got)

	s.True(st.DeleteIf(s.ctx, "browser-1", second))
	s.True(second.Closed())
	_, ok = st.Get(s.ctx, "browser-1")
	s.False(ok)
}

func (s *WizardStoreSuite) TestExpiredWizardIsTornDown() {
	st := New(10*time.Millisecond, time.Hour)
	w := newWizard("w1")
	st.Put(s.ctx, "browser-1", w)

	time.Sleep(20 * time.Millisecond)
	st.Sweep()

	s.True(w.Closed())
	s.Zero(st.Len())
}

func (s *WizardStoreSuite) TestClosedWizardIsNotReturned() {
	st := New(time.Minute, time.Minute)
	w := newWizard("w1")
	st.Put(s.ctx, "browser-1", w)
	w.Close()

	_, ok := st.Get(s.ctx, "browser-1")
	s.False(ok)
}

func (s *WizardStoreSuite) TestOnExpireOnlyForIdleWizards() {
	var expired []string
	st := New(10*time.Millisecond, time.Hour, OnExpire(func(browserID string, w *wizard.Wizard) {
		expired = append(expired, browserID)
	}))
	st.Put(s.ctx, "idle", newWizard("w1"))
	time.Sleep(20 * time.Millisecond)
	st.Sweep()

	st.Put(s.ctx, "deleted", newWizard("w2"))
	st.Delete(s.ctx, "deleted")

	s.Equal([]string{"idle"}, expired)
}
