package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerStartsClosed(t *testing.T) {
	b := New("api")
	assert.Equal(t, "api", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
}

// Each rune of calls is one outcome: F records a failure, S a success.
func TestBreakerSequences(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		calls string
		open  []bool
	}{
		{
			name:  "opens on the third consecutive failure",
			opts:  []Option{WithFailureThreshold(3)},
			calls: "FFF",
			open:  []bool{false, false, true},
		},
		{
			name:  "a success clears the failure streak",
			opts:  []Option{WithFailureThreshold(3)},
			calls: "FFSFFF",
			open:  []bool{false, false, false, false, false, true},
		},
		{
			name:  "closes after enough successes",
			opts:  []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			calls: "FSS",
			open:  []bool{true, true, false},
		},
		{
			name:  "a failure while open restarts recovery",
			opts:  []Option{WithFailureThreshold(1), WithSuccessThreshold(3)},
			calls: "FSSFSSS",
			open:  []bool{true, true, true, true, true, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.open, len(tt.calls))
			b := New("api", tt.opts...)
			for i, c := range tt.calls {
				if c == 'F' {
					b.RecordFailure()
				} else {
					b.RecordSuccess()
				}
				assert.Equal(t, tt.open[i], b.IsOpen(), "after call %d (%c)", i+1, c)
			}
		})
	}
}

func TestBreakerReportsTransitions(t *testing.T) {
	b := New("api", WithFailureThreshold(1), WithSuccessThreshold(1))

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.False(t, change.Opened, "already open")

	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
}

func TestBreakerReset(t *testing.T) {
	b := New("api", WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()

	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerProbesAfterCooldown(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := New("api",
		WithFailureThreshold(1),
		WithCooldown(5*time.Second),
		WithClock(func() time.Time { return now }),
	)

	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.False(t, b.Allow(), "open breaker rejects inside cooldown")

	now = now.Add(6 * time.Second)
	assert.True(t, b.Allow(), "one probe after cooldown")
	assert.False(t, b.Allow(), "second probe waits for the next cooldown")
}
