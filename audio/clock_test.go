package audio

import (
	"testing"
	"time"
)

func TestManualClock_FiresInOrder(t *testing.T) {
	c := NewManualClock()
	var order []int

	c.AfterFunc(300*time.Millisecond, func() { order = append(order, 3) })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, 1) })
	c.AfterFunc(200*time.Millisecond, func() { order = append(order, 2) })

	c.Advance(time.Second)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", order)
	}
}

func TestManualClock_DoesNotFireEarly(t *testing.T) {
	c := NewManualClock()
	fired := false
	c.AfterFunc(200*time.Millisecond, func() { fired = true })

	c.Advance(100 * time.Millisecond)
	if fired {
		t.Error("timer fired before its due time")
	}

	c.Advance(100 * time.Millisecond)
	if !fired {
		t.Error("timer did not fire at its due time")
	}
}

func TestManualClock_Stop(t *testing.T) {
	c := NewManualClock()
	fired := false
	timer := c.AfterFunc(100*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop on a pending timer should report true")
	}
	c.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if timer.Stop() {
		t.Error("Stop on an already stopped timer should report false")
	}
}

func TestManualClock_CallbackReschedules(t *testing.T) {
	c := NewManualClock()
	count := 0
	var tick func()
	tick = func() {
		count++
		c.AfterFunc(100*time.Millisecond, tick)
	}
	c.AfterFunc(100*time.Millisecond, tick)

	c.Advance(time.Second)

	if count != 10 {
		t.Errorf("expected 10 chained ticks in 1s, got %d", count)
	}
	if c.Now() != time.Second {
		t.Errorf("clock should land on the advance target, got %v", c.Now())
	}
}

func TestWallClock_NowAdvances(t *testing.T) {
	c := NewClock()
	a := c.Now()
	time.Sleep(5 * time.Millisecond)
	if c.Now() <= a {
		t.Error("wall clock did not advance")
	}
}
