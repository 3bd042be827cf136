package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}

	// Capture time before and after the clock call
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	// The clock's time should be between our before/after measurements
	if now.Before(before) {
		t.Errorf("Clock time %v is before measurement time %v", now, before)
	}
	if now.After(after) {
		t.Errorf("Clock time %v is after measurement time %v", now, after)
	}
}

func TestRealClock_Sleep(t *testing.T) {
	clock := RealClock{}

	start := time.Now()
	clock.Sleep(2 * time.Millisecond)
	elapsed := time.Since(start)

	if elapsed < 2*time.Millisecond {
		t.Errorf("Sleep returned after %v; want at least 2ms", elapsed)
	}
}

func TestMockClock_Now(t *testing.T) {
	fixedTime := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := &MockClock{CurrentTime: fixedTime}

	now := clock.Now()

	if !now.Equal(fixedTime) {
		t.Errorf("Expected %v, got %v", fixedTime, now)
	}
}

func TestMockClock_Sleep_AdvancesTime(t *testing.T) {
	fixedTime := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := &MockClock{CurrentTime: fixedTime}

	clock.Sleep(time.Millisecond)

	want := fixedTime.Add(time.Millisecond)
	if !clock.Now().Equal(want) {
		t.Errorf("after Sleep, Now() = %v; want %v", clock.Now(), want)
	}
	if got := clock.Slept(); len(got) != 1 || got[0] != time.Millisecond {
		t.Errorf("Slept() = %v; want [1ms]", got)
	}
}

func TestMockClock_Sleep_RunsHook(t *testing.T) {
	clock := &MockClock{CurrentTime: time.Now()}

	var hookCalls []time.Duration
	clock.OnSleep = func(d time.Duration) {
		hookCalls = append(hookCalls, d)
	}

	clock.Sleep(5 * time.Millisecond)

	if len(hookCalls) != 1 || hookCalls[0] != 5*time.Millisecond {
		t.Errorf("OnSleep calls = %v; want [5ms]", hookCalls)
	}
}

func TestMockClock_Advance(t *testing.T) {
	fixedTime := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := &MockClock{CurrentTime: fixedTime}

	clock.Advance(time.Hour)

	want := fixedTime.Add(time.Hour)
	if !clock.Now().Equal(want) {
		t.Errorf("after Advance, Now() = %v; want %v", clock.Now(), want)
	}
}
