package constellation

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock(0)
	if c.Now() != 0 {
		t.Errorf("Now = %v, want 0", c.Now())
	}
	c.Advance(frame)
	c.Advance(frame)
	if c.Now() != 2*frame {
		t.Errorf("Now = %v, want %v", c.Now(), 2*frame)
	}
	c.Set(5 * time.Second)
	if c.Now() != 5*time.Second {
		t.Errorf("Now = %v, want 5s", c.Now())
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Now()
	b := c.Now()
	if a < 0 || b < a {
		t.Errorf("SystemClock went backwards: %v then %v", a, b)
	}
}
