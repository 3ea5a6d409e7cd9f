package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time within one service day, stored as seconds since
// midnight. Plans and timetables carry intra-day "HH:MM" or "HH:MM:SS"
// strings; keeping them as plain seconds avoids the date-component mismatches
// that arise when clock times are parsed into full timestamps.
type TimeOfDay int

// Granularity selects how precisely two TimeOfDay values are compared.
type Granularity string

const (
	GranularityMinute Granularity = "minute"
	GranularitySecond Granularity = "second"
)

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS". Hours up to 23 only; the
// plan format has no overnight wrap.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM or HH:MM:SS", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: bad minute", s)
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid time %q: bad second", s)
		}
	}
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return (int(t) % 3600) / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// Sub returns t minus o in minutes.
func (t TimeOfDay) Sub(o TimeOfDay) float64 {
	return float64(t-o) / 60
}

// Truncate drops sub-granularity precision, so two values that agree at the
// chosen granularity compare equal.
func (t TimeOfDay) Truncate(g Granularity) TimeOfDay {
	if g == GranularityMinute {
		return t - TimeOfDay(int(t)%60)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
