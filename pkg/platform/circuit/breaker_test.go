package circuit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestBreaker(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("opens after consecutive failures", func(t *testing.T) {
		b := New("idm-test", WithFailureThreshold(2))
		require.NoError(t, b.Allow())
		b.Record(errBoom)
		assert.Equal(t, StateClosed, b.State())
		b.Record(errBoom)
		assert.Equal(t, StateOpen, b.State())
		assert.ErrorIs(t, b.Allow(), ErrOpen)
	})

	t.Run("success resets the failure count", func(t *testing.T) {
		b := New("idm-test", WithFailureThreshold(2))
		b.Record(errBoom)
		b.Record(nil)
		b.Record(errBoom)
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("probes after cooldown and closes on success", func(t *testing.T) {
		clock := &fakeClock{t: time.Unix(0, 0)}
		var transitions []State
		b := New("idm-test",
			WithFailureThreshold(1),
			WithCooldown(time.Second),
			WithClock(clock.Now),
			WithStateChange(func(_ string, _, to State) { transitions = append(transitions, to) }),
		)
		b.Record(errBoom)
		assert.ErrorIs(t, b.Allow(), ErrOpen)

		clock.Advance(time.Second)
		require.NoError(t, b.Allow())
		assert.Equal(t, StateHalfOpen, b.State())
		assert.ErrorIs(t, b.Allow(), ErrOpen, "only one probe at a time")

		b.Record(nil)
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, transitions)
	})

	t.Run("failed probe re-opens", func(t *testing.T) {
		clock := &fakeClock{t: time.Unix(0, 0)}
		b := New("idm-test", WithFailureThreshold(3), WithCooldown(time.Second), WithClock(clock.Now))
		for range 3 {
			b.Record(errBoom)
		}
		clock.Advance(2 * time.Second)
		require.NoError(t, b.Allow())
		b.Record(errBoom)
		assert.Equal(t, StateOpen, b.State())
		assert.ErrorIs(t, b.Allow(), ErrOpen)
	})
}
