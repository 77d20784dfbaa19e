package celebrate

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/countdown/internal/clock"
)

type mockEffect struct {
	mock.Mock
}

func (m *mockEffect) Play() error  { return m.Called().Error(0) }
func (m *mockEffect) Fade() error  { return m.Called().Error(0) }
func (m *mockEffect) Clear() error { return m.Called().Error(0) }

// panicEffect panics on every call.
type panicEffect struct{}

func (panicEffect) Play() error  { panic("play exploded") }
func (panicEffect) Fade() error  { panic("fade exploded") }
func (panicEffect) Clear() error { panic("clear exploded") }

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newEffect() *mockEffect {
	e := &mockEffect{}
	e.On("Play").Return(nil)
	e.On("Fade").Return(nil)
	e.On("Clear").Return(nil)
	return e
}

func TestTriggerLifecycle(t *testing.T) {
	clk := clock.NewFake(epoch)
	effect := newEffect()
	trig := NewTrigger(effect, Config{Clock: clk})

	assert.Equal(t, StateIdle, trig.State())
	assert.False(t, trig.Active())

	require.True(t, trig.Fire())
	assert.Equal(t, StateActive, trig.State())
	assert.True(t, trig.Active())
	effect.AssertNumberOfCalls(t, "Play", 1)

	clk.Advance(1099 * time.Millisecond)
	assert.Equal(t, StateActive, trig.State())

	clk.Advance(time.Millisecond)
	assert.Equal(t, StateFading, trig.State())
	assert.True(t, trig.Active())
	effect.AssertNumberOfCalls(t, "Fade", 1)

	clk.Advance(1199 * time.Millisecond)
	assert.Equal(t, StateFading, trig.State())

	clk.Advance(time.Millisecond)
	assert.Equal(t, StateCleared, trig.State())
	assert.False(t, trig.Active())
	effect.AssertNumberOfCalls(t, "Clear", 1)
	assert.Zero(t, clk.Pending())
}

func TestTriggerFiresOnce(t *testing.T) {
	clk := clock.NewFake(epoch)
	effect := newEffect()
	trig := NewTrigger(effect, Config{Clock: clk})

	assert.True(t, trig.Fire())
	assert.False(t, trig.Fire())
	clk.Advance(5 * time.Second)
	assert.False(t, trig.Fire())

	effect.AssertNumberOfCalls(t, "Play", 1)
	effect.AssertNumberOfCalls(t, "Fade", 1)
	effect.AssertNumberOfCalls(t, "Clear", 1)
}

func TestTriggerCustomDelays(t *testing.T) {
	clk := clock.NewFake(epoch)
	trig := NewTrigger(nil, Config{Clock: clk, FadeAfter: 100 * time.Millisecond, ClearAfter: 200 * time.Millisecond})

	trig.Fire()
	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, StateFading, trig.State())
	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, StateCleared, trig.State())
}

func TestTriggerClearNotBeforeFade(t *testing.T) {
	clk := clock.NewFake(epoch)
	effect := newEffect()
	trig := NewTrigger(effect, Config{Clock: clk, FadeAfter: time.Second, ClearAfter: 500 * time.Millisecond})

	trig.Fire()
	clk.Advance(time.Second)

	assert.Equal(t, StateCleared, trig.State())
	effect.AssertNumberOfCalls(t, "Fade", 1)
	effect.AssertNumberOfCalls(t, "Clear", 1)
}

func TestTriggerStop(t *testing.T) {
	t.Run("while_active", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		effect := newEffect()
		trig := NewTrigger(effect, Config{Clock: clk})

		trig.Fire()
		trig.Stop()

		assert.Equal(t, StateCleared, trig.State())
		assert.Zero(t, clk.Pending())
		clk.Advance(5 * time.Second)
		effect.AssertNumberOfCalls(t, "Fade", 0)
		effect.AssertNumberOfCalls(t, "Clear", 1)
	})

	t.Run("before_fire", func(t *testing.T) {
		effect := newEffect()
		trig := NewTrigger(effect, Config{Clock: clock.NewFake(epoch)})

		trig.Stop()
		assert.False(t, trig.Fire())
		effect.AssertNotCalled(t, "Play")
		effect.AssertNotCalled(t, "Clear")
	})

	t.Run("twice", func(t *testing.T) {
		trig := NewTrigger(nil, Config{Clock: clock.NewFake(epoch)})
		trig.Fire()
		trig.Stop()
		trig.Stop()
		assert.Equal(t, StateCleared, trig.State())
	})
}

func TestTriggerEffectErrors(t *testing.T) {
	clk := clock.NewFake(epoch)
	effect := &mockEffect{}
	effect.On("Play").Return(errors.New("no canvas"))
	effect.On("Fade").Return(errors.New("no canvas"))
	effect.On("Clear").Return(nil)
	trig := NewTrigger(effect, Config{Clock: clk})

	assert.True(t, trig.Fire())
	assert.True(t, trig.Active())

	clk.Advance(3 * time.Second)
	assert.Equal(t, StateCleared, trig.State())
	effect.AssertExpectations(t)
}

func TestTriggerEffectPanics(t *testing.T) {
	clk := clock.NewFake(epoch)
	trig := NewTrigger(panicEffect{}, Config{Clock: clk})

	assert.NotPanics(t, func() {
		trig.Fire()
		clk.Advance(3 * time.Second)
	})
	assert.Equal(t, StateCleared, trig.State())
	assert.False(t, trig.Active())
}

func TestTriggerNotify(t *testing.T) {
	clk := clock.NewFake(epoch)
	var mu sync.Mutex
	var seen []State
	trig := NewTrigger(nil, Config{Clock: clk, Notify: func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}})

	trig.Fire()
	clk.Advance(3 * time.Second)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateActive, StateFading, StateCleared}, seen)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "fading", StateFading.String())
	assert.Equal(t, "cleared", StateCleared.String())
	assert.Equal(t, "State(9)", State(9).String())
}
