package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresOnceAtDeadline(t *testing.T) {
	s := New()
	var firedAt []float64
	s.After(0.5, func() { firedAt = append(firedAt, s.Now()) })

	s.Advance(0.25)
	assert.Empty(t, firedAt)

	s.Advance(0.25)
	require.Len(t, firedAt, 1)
	assert.Equal(t, 0.5, firedAt[0])

	s.Advance(1)
	assert.Len(t, firedAt, 1)
	assert.Equal(t, 0, s.Len())
}

func TestEveryRepeatsWithinOneStep(t *testing.T) {
	s := New()
	count := 0
	s.Every(0.25, func() { count++ })

	// A single large step still fires every elapsed interval.
	s.Advance(1)
	assert.Equal(t, 4, count)
	assert.Equal(t, 1, s.Len())
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	h := s.After(1, func() { fired = true })

	assert.True(t, s.Active(h))
	assert.True(t, s.Cancel(h))
	assert.False(t, s.Cancel(h))
	assert.False(t, s.Active(h))

	s.Advance(2)
	assert.False(t, fired)
}

func TestRepeatingTimerCanCancelItself(t *testing.T) {
	s := New()
	count := 0
	var h Handle
	h = s.Every(0.5, func() {
		count++
		if count == 2 {
			s.Cancel(h)
		}
	})

	s.Advance(5)
	assert.Equal(t, 2, count)
	assert.False(t, s.Active(h))
}

func TestDeadlineOrderAndTies(t *testing.T) {
	s := New()
	var order []string
	s.After(0.5, func() { order = append(order, "b") })
	s.After(0.25, func() { order = append(order, "a") })
	s.After(0.5, func() { order = append(order, "c") })

	s.Advance(1)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestCallbackSchedulesRelativeToItsDeadline(t *testing.T) {
	s := New()
	var secondAt float64
	s.After(0.25, func() {
		s.After(0.25, func() { secondAt = s.Now() })
	})

	s.Advance(1)
	assert.Equal(t, 0.5, secondAt)
	assert.Equal(t, 1.0, s.Now())
}

func TestPauseAndTimeScale(t *testing.T) {
	s := New()
	fired := false
	h := s.After(1, func() { fired = true })

	s.Pause()
	s.Advance(s.Scale(10))
	assert.False(t, fired)
	assert.Equal(t, 1.0, s.Remaining(h))

	s.Resume()
	s.SetTimeScale(0)
	s.Advance(s.Scale(10))
	assert.False(t, fired)

	s.SetTimeScale(0.5)
	s.Advance(s.Scale(1))
	assert.False(t, fired)
	assert.Equal(t, 0.5, s.Remaining(h))

	s.Advance(s.Scale(1))
	assert.True(t, fired)
}

func TestNegativeScaleClamps(t *testing.T) {
	s := New()
	s.SetTimeScale(-2)
	assert.Equal(t, 0.0, s.TimeScale())
	assert.Equal(t, 0.0, s.Scale(1))
}
