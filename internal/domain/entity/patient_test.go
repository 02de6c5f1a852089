package entity

import (
	"testing"
	"time"
)

func TestAgeAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  *time.Time
		age  int
		want int
	}{
		{
			name: "no dob falls back to snapshot",
			dob:  nil,
			age:  42,
			want: 42,
		},
		{
			name: "birthday already passed this year",
			dob:  datePtr(1990, 3, 1),
			age:  0,
			want: 35,
		},
		{
			name: "birthday still ahead this year",
			dob:  datePtr(1990, 12, 1),
			age:  0,
			want: 34,
		},
		{
			name: "dob wins over stale snapshot",
			dob:  datePtr(2000, 1, 1),
			age:  99,
			want: 25,
		},
		{
			name: "infant",
			dob:  datePtr(2025, 2, 1),
			age:  0,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Patient{Age: tt.age, DateOfBirth: tt.dob}
			if got := p.AgeAt(now); got != tt.want {
				t.Errorf("AgeAt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestGenderRestrictionAdmits(t *testing.T) {
	tests := []struct {
		restriction GenderRestriction
		gender      Gender
		want        bool
	}{
		{RestrictionNone, GenderMale, true},
		{RestrictionNone, GenderFemale, true},
		{RestrictionMale, GenderMale, true},
		{RestrictionMale, GenderFemale, false},
		{RestrictionFemale, GenderFemale, true},
		{RestrictionFemale, GenderMale, false},
	}

	for _, tt := range tests {
		if got := tt.restriction.Admits(tt.gender); got != tt.want {
			t.Errorf("%s.Admits(%s) = %v, want %v", tt.restriction, tt.gender, got, tt.want)
		}
	}
}

func TestNormalizePrefix(t *testing.T) {
	s := &Service{Prefix: " gigi "}
	s.NormalizePrefix()
	if s.Prefix != "GIGI" {
		t.Errorf("prefix = %q, want GIGI", s.Prefix)
	}
}
