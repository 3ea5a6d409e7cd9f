package model

import (
	"encoding/json"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"08:00", 8 * 3600},
		{"08:20:30", 8*3600 + 20*60 + 30},
		{"00:00", 0},
		{"23:59:59", 23*3600 + 59*60 + 59},
		{" 07:15 ", 7*3600 + 15*60},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("parse %q: got %d want %d", c.in, got, c.want)
		}
	}
}

func TestParseTimeOfDayInvalid(t *testing.T) {
	for _, in := range []string{"", "8", "24:00", "12:60", "12:00:60", "ab:cd", "12.30"} {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestTimeOfDaySub(t *testing.T) {
	a, _ := ParseTimeOfDay("08:50")
	b, _ := ParseTimeOfDay("08:20")
	if got := a.Sub(b); got != 30 {
		t.Fatalf("expected 30 minutes, got %v", got)
	}
	c, _ := ParseTimeOfDay("08:20:30")
	if got := c.Sub(b); got != 0.5 {
		t.Fatalf("expected 0.5 minutes, got %v", got)
	}
}

func TestTimeOfDayTruncate(t *testing.T) {
	v, _ := ParseTimeOfDay("08:20:45")
	if got := v.Truncate(GranularityMinute); got.String() != "08:20:00" {
		t.Fatalf("minute truncation: got %s", got)
	}
	if got := v.Truncate(GranularitySecond); got != v {
		t.Fatalf("second truncation must be identity, got %s", got)
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	v, _ := ParseTimeOfDay("09:05:01")
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"09:05:01"` {
		t.Fatalf("unexpected json %s", b)
	}
	var back TimeOfDay
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != v {
		t.Fatalf("roundtrip mismatch: %d != %d", back, v)
	}
}

func TestActivityValidate(t *testing.T) {
	a := Activity{Vehicle: "1", Kind: ServiceTrip, Start: 100, End: 50}
	if err := a.Validate(); err == nil {
		t.Fatalf("expected error for start after end")
	}
	a.End = 100
	if err := a.Validate(); err != nil {
		t.Fatalf("equal start and end must pass: %v", err)
	}
	a.Vehicle = ""
	if err := a.Validate(); err == nil {
		t.Fatalf("expected error for missing vehicle")
	}
}
