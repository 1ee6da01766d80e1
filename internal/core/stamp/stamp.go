// Package stamp extracts wall-clock timestamps from raw log lines.
// Instants are location-free readings of the log producer's own clock,
// carried as time.Time values in the UTC frame so they compare cheaply
package stamp

import (
	"regexp"
	"time"
)

// stampRE accepts both separator styles in one pattern so the leftmost
// timestamp-shaped substring wins regardless of form. Bracketed stamps like
// [2025-08-20 16:01:07.348] match through their inner digits
var stampRE = regexp.MustCompile(`(\d{4})[-/](\d{2})[-/](\d{2})[ \t]+(\d{2}:\d{2}:\d{2})(?:\.\d+)?`)

// Extract returns the earliest embedded timestamp in line at second
// resolution. Fractional seconds are discarded. A line with no
// timestamp-shaped substring, or one whose digits do not form a real
// calendar instant (month 13 etc.), reports ok=false and never an error
func Extract(line string) (time.Time, bool) {
	m := stampRE.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02 15:04:05", m[1]+"-"+m[2]+"-"+m[3]+" "+m[4])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
