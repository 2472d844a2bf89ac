package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)

func TestFake_SleepWakesAtDeadline(t *testing.T) {
	fc := NewFake(epoch)
	done := make(chan struct{})

	go func() {
		fc.Sleep(500 * time.Millisecond)
		close(done)
	}()

	fc.BlockUntil(1)
	fc.Advance(499 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("sleeper woke before its deadline")
	case <-time.After(10 * time.Millisecond):
	}

	fc.Advance(time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sleeper did not wake at its deadline")
	}
	assert.Equal(t, epoch.Add(500*time.Millisecond), fc.Now())
}

func TestReal_SleepElapses(t *testing.T) {
	c := Real()
	start := c.Now()
	c.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}
