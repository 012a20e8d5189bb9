package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// FormattedTime is a clock time split into its display parts.
type FormattedTime struct {
	Hours   string
	Minutes string
	Seconds string
}

// String joins the parts as HH:MM:SS.
func (f FormattedTime) String() string {
	return f.Hours + ":" + f.Minutes + ":" + f.Seconds
}

// FormatTime pads every value below 10 with a leading zero. Values are not
// range checked.
func FormatTime(hours, minutes, seconds int) FormattedTime {
	return FormattedTime{
		Hours:   pad(hours),
		Minutes: pad(minutes),
		Seconds: pad(seconds),
	}
}

func pad(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// ErrInvalidTimestamp is returned by ParseTimestamp for unrecognised input.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// layouts accepted besides RFC 3339, read in the local time zone.
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads RFC 3339 timestamps and the values produced by HTML
// date and datetime-local inputs.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
