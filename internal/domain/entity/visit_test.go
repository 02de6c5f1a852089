package entity

import (
	"testing"
	"time"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name string
		from VisitStatus
		to   VisitStatus
		want bool
	}{
		{"register to checkin", StatusRegistered, StatusCheckedIn, true},
		{"checkin to waiting", StatusCheckedIn, StatusWaiting, true},
		{"waiting to called", StatusWaiting, StatusCalled, true},
		{"called to in service", StatusCalled, StatusInService, true},
		{"in service to finished", StatusInService, StatusFinished, true},
		{"skip checkin", StatusRegistered, StatusWaiting, false},
		{"skip waiting", StatusCheckedIn, StatusCalled, false},
		{"finish without service", StatusCalled, StatusFinished, false},
		{"backwards", StatusCalled, StatusWaiting, false},
		{"cancel from registered", StatusRegistered, StatusCancelled, true},
		{"cancel from checked in", StatusCheckedIn, StatusCancelled, true},
		{"cancel from waiting", StatusWaiting, StatusCancelled, true},
		{"cancel from called", StatusCalled, StatusCancelled, true},
		{"cancel from in service", StatusInService, StatusCancelled, false},
		{"cancel from finished", StatusFinished, StatusCancelled, false},
		{"noshow from registered", StatusRegistered, StatusNoShow, true},
		{"noshow from checked in", StatusCheckedIn, StatusNoShow, true},
		{"noshow from waiting", StatusWaiting, StatusNoShow, true},
		{"noshow from called", StatusCalled, StatusNoShow, false},
		{"noshow from in service", StatusInService, StatusNoShow, false},
		{"reopen finished", StatusFinished, StatusInService, false},
		{"reopen cancelled", StatusCancelled, StatusCheckedIn, false},
		{"re-register", StatusCheckedIn, StatusRegistered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("ValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestKnownStatus(t *testing.T) {
	for _, s := range []VisitStatus{
		StatusRegistered, StatusCheckedIn, StatusWaiting, StatusCalled,
		StatusInService, StatusFinished, StatusCancelled, StatusNoShow,
	} {
		if !KnownStatus(s) {
			t.Errorf("KnownStatus(%s) = false, want true", s)
		}
	}
	if KnownStatus("DONE") {
		t.Error("KnownStatus(DONE) = true, want false")
	}
	if KnownStatus("") {
		t.Error("KnownStatus(empty) = true, want false")
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[VisitStatus]bool{
		StatusFinished:  true,
		StatusCancelled: true,
		StatusNoShow:    true,
	}
	for _, s := range []VisitStatus{
		StatusRegistered, StatusCheckedIn, StatusWaiting, StatusCalled,
		StatusInService, StatusFinished, StatusCancelled, StatusNoShow,
	} {
		if got := s.IsTerminal(); got != terminal[s] {
			t.Errorf("%s.IsTerminal() = %v, want %v", s, got, terminal[s])
		}
	}
}

func TestFormatTicket(t *testing.T) {
	tests := []struct {
		prefix     string
		doctorCode string
		seq        int
		want       string
	}{
		{"U", "1", 1, "U-1-001"},
		{"u", "1", 1, "U-1-001"},
		{"A", "D12", 42, "A-D12-042"},
		{"GIGI", "7", 999, "GIGI-7-999"},
		{"U", "1", 1000, "U-1-1000"},
	}

	for _, tt := range tests {
		if got := FormatTicket(tt.prefix, tt.doctorCode, tt.seq); got != tt.want {
			t.Errorf("FormatTicket(%q, %q, %d) = %q, want %q", tt.prefix, tt.doctorCode, tt.seq, got, tt.want)
		}
	}
}

func TestStampSetOnce(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	v := &Visit{TRegister: base}

	first := base.Add(10 * time.Minute)
	v.Stamp(StatusCheckedIn, first)
	if v.TCheckin == nil || !v.TCheckin.Equal(first) {
		t.Fatalf("TCheckin = %v, want %v", v.TCheckin, first)
	}

	// A second stamp for the same status must not overwrite the first.
	v.Stamp(StatusCheckedIn, base.Add(20*time.Minute))
	if !v.TCheckin.Equal(first) {
		t.Errorf("TCheckin overwritten to %v, want %v", v.TCheckin, first)
	}
}

func TestStampClampsBackwardsClock(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	v := &Visit{TRegister: base}
	checkin := base.Add(30 * time.Minute)
	v.Stamp(StatusCheckedIn, checkin)

	// Clock skew: the call event carries an earlier wall time. The stamp is
	// clamped so the timeline never runs backwards.
	v.Stamp(StatusCalled, base.Add(5*time.Minute))
	if v.TCalled == nil || !v.TCalled.Equal(checkin) {
		t.Errorf("TCalled = %v, want clamped to %v", v.TCalled, checkin)
	}
}

func TestStampTerminalSharesFinishedColumn(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	for _, target := range []VisitStatus{StatusFinished, StatusCancelled, StatusNoShow} {
		v := &Visit{TRegister: base}
		at := base.Add(time.Hour)
		v.Stamp(target, at)
		if v.TFinished == nil || !v.TFinished.Equal(at) {
			t.Errorf("Stamp(%s): TFinished = %v, want %v", target, v.TFinished, at)
		}
	}
}

func TestStampWaitingHasNoColumn(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	v := &Visit{TRegister: base}
	v.Stamp(StatusWaiting, base.Add(time.Minute))
	if v.TCheckin != nil || v.TCalled != nil || v.TInService != nil || v.TFinished != nil {
		t.Error("Stamp(WAITING) set a timestamp column, want none")
	}
}

func TestLastStamp(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	v := &Visit{TRegister: base}
	if got := v.LastStamp(); !got.Equal(base) {
		t.Errorf("LastStamp() = %v, want %v", got, base)
	}

	called := base.Add(45 * time.Minute)
	v.TCalled = &called
	if got := v.LastStamp(); !got.Equal(called) {
		t.Errorf("LastStamp() = %v, want %v", got, called)
	}
}
