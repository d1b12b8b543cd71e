// SPDX-License-Identifier: MPL-2.0

// Package timestamp formats times and durations for teactl output.
package timestamp

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Layout is the UTC timestamp layout used in structured output.
	Layout = "2006-01-02T15:04:05"
	// TimeLayout is the wall-clock layout used for local times.
	TimeLayout = "15:04:05"

	hour   = 60 * 60
	minute = 60
)

// ToUTCString formats t in UTC using Layout. The zero time formats as "".
func ToUTCString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(Layout)
}

// ToLocalTimeString formats the wall-clock part of t in the local time zone.
func ToLocalTimeString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(TimeLayout)
}

// FromUTCString parses a Layout timestamp as UTC.
func FromUTCString(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// Humanize renders a duration in whole seconds as "1h 02m 03s", "05m 00s" or
// "07s". Minutes appear once hours do; negative durations are treated as zero.
func Humanize(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	var parts []string
	hours := seconds / hour
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
		seconds -= hours * hour
	}

	minutes := seconds / minute
	if minutes > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%02dm", minutes))
		seconds -= minutes * minute
	}

	parts = append(parts, fmt.Sprintf("%02ds", seconds))
	return strings.Join(parts, " ")
}

// HumanizeDuration is Humanize for a time.Duration, truncated to seconds.
func HumanizeDuration(d time.Duration) string {
	return Humanize(int64(d / time.Second))
}
