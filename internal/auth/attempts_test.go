package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tenantnotes/pkg/testutil"
)

func TestAttemptTracker(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no attempts shows nothing", func(t *testing.T) {
		tr := NewAttemptTracker(5, 5*time.Minute)
		st := tr.State("b1", now)
		assert.Zero(t, st.Attempts)
		assert.Empty(t, st.Message)
	})

	t.Run("warns two attempts before the limit", func(t *testing.T) {
		tr := NewAttemptTracker(5, 5*time.Minute)
		tr.RecordFailure("b1", now)
		tr.RecordFailure("b1", now)
		assert.Equal(t, "2/5 login attempts used", tr.State("b1", now).Message)

		tr.RecordFailure("b1", now)
		st := tr.State("b1", now)
		assert.True(t, st.Warning)
		assert.Equal(t, "3/5 login attempts used - Account will be locked after next failed attempt", st.Message)
	})

	t.Run("locks with a countdown at the limit", func(t *testing.T) {
		tr := NewAttemptTracker(5, 5*time.Minute)
		for i := 0; i < 5; i++ {
			tr.RecordFailure("b1", now)
		}
		st := tr.State("b1", now)
		assert.True(t, st.Locked)
		assert.Equal(t, 300, st.SecondsRemaining)
		assert.Equal(t, "5:00", st.Countdown)

		st = tr.State("b1", now.Add(4*time.Minute+1*time.Second))
		assert.Equal(t, "0:59", st.Countdown)

		st = tr.State("b1", now.Add(5*time.Minute))
		assert.False(t, st.Locked)
		assert.Equal(t, 5, st.Attempts)
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		tr := NewAttemptTracker(5, 5*time.Minute)
		tr.RecordFailure("b1", now)
		tr.Reset("b1")
		assert.Zero(t, tr.State("b1", now).Attempts)
	})

	t.Run("browsers are counted separately", func(t *testing.T) {
		tr := NewAttemptTracker(5, 5*time.Minute)
		tr.RecordFailure("b1", now)
		assert.Zero(t, tr.State("b2", now).Attempts)
	})
}

func TestLockoutCountdownRestarts(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := NewAttemptTracker(5, 5*time.Minute)

	testutil.Given(t, "a browser that used every attempt", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			tr.RecordFailure("b1", start)
		}

		testutil.When(t, "the countdown runs out and the next login also fails", func(t *testing.T) {
			later := start.Add(6 * time.Minute)
			assert.False(t, tr.State("b1", later).Locked)
			count := tr.RecordFailure("b1", later)

			testutil.Then(t, "the counter keeps climbing and the lock restarts", func(t *testing.T) {
				assert.Equal(t, 6, count)
				st := tr.State("b1", later)
				assert.True(t, st.Locked)
				assert.Equal(t, "5:00", st.Countdown)
			})
		})
	})
}
