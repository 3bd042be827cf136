package clock

import "time"

// Clock abstracts wall-clock reads and sleeps so components that wait on
// real time (the file stability probe) stay testable.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type RealClock struct{}

func (c RealClock) Now() time.Time {
	return time.Now()
}

func (c RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// MockClock is a scriptable Clock. Sleep advances CurrentTime instead of
// blocking; OnSleep, when set, runs in place of the wait so tests can
// mutate files "during" a probe interval.
type MockClock struct {
	CurrentTime time.Time
	OnSleep     func(d time.Duration)
	slept       []time.Duration
}

func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

func (c *MockClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.CurrentTime = c.CurrentTime.Add(d)
	if c.OnSleep != nil {
		c.OnSleep(d)
	}
}

func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Slept returns every duration passed to Sleep, in order.
func (c *MockClock) Slept() []time.Duration {
	return c.slept
}
