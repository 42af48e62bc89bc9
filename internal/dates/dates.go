// Package dates parses the due-date formats accepted at the prompt and
// canonicalizes them to YYYY-MM-DD.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const Canonical = "2006-01-02"

var ErrInvalid = errors.New("not a valid date")

// Parse accepts YYYY-MM-DD, D.M.YYYY and D.M (implicit current year) and
// returns the canonical form. The calendar is checked: 31.02.2024 fails.
func Parse(v string) (string, error) {
	return parseAt(v, time.Now())
}

func parseAt(v string, now time.Time) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ErrInvalid
	}

	if strings.Contains(v, "-") {
		t, err := time.Parse(Canonical, v)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalid, v)
		}
		return t.Format(Canonical), nil
	}

	parts := strings.Split(v, ".")
	switch len(parts) {
	case 2:
		return buildDate(parts[0], parts[1], strconv.Itoa(now.Year()))
	case 3:
		return buildDate(parts[0], parts[1], parts[2])
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalid, v)
	}
}

func buildDate(dayStr, monthStr, yearStr string) (string, error) {
	day, err1 := strconv.Atoi(strings.TrimSpace(dayStr))
	month, err2 := strconv.Atoi(strings.TrimSpace(monthStr))
	year, err3 := strconv.Atoi(strings.TrimSpace(yearStr))
	if err1 != nil || err2 != nil || err3 != nil {
		return "", ErrInvalid
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 31 -> Mar 2), so require the
	// components to survive the round trip.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", fmt.Errorf("%w: %d.%d.%d", ErrInvalid, day, month, year)
	}
	return t.Format(Canonical), nil
}
