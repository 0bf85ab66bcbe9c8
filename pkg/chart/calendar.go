package chart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ThinMode selects which dates of a calendar axis receive a label.
type ThinMode int

const (
	ThinDaily   ThinMode = iota // every distinct date
	ThinWeekly                  // first, last, first-of-month and Sundays
	ThinMonthly                 // first, last and first-of-month
)

func (m ThinMode) String() string {
	switch m {
	case ThinDaily:
		return "daily"
	case ThinWeekly:
		return "weekly"
	case ThinMonthly:
		return "monthly"
	}
	return "ThinMode(" + strconv.Itoa(int(m)) + ")"
}

// Span thresholds in days.
const (
	dailySpanLimit  = 60
	weeklySpanLimit = 120
)

var dayEpoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	time.RFC3339,
	"20060102",
}

// ParseDate parses a position string as a calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// DayIndex returns the number of days between 1970-01-01 and t's calendar date.
func DayIndex(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// DayDate is the inverse of DayIndex.
func DayDate(day int) time.Time {
	return dayEpoch.AddDate(0, 0, day)
}

// DateTick is one labelled date on a calendar axis.
type DateTick struct {
	Day        int
	Date       time.Time
	FirstLine  string // day of month
	SecondLine string // YYYY/MM/DD, MM/DD or empty
}

// CalendarAxis is an X axis over calendar dates.
type CalendarAxis struct {
	Days        []int   // distinct dates, ascending
	ExtendedMin float64 // first date - 0.5
	ExtendedMax float64 // last date + 0.5
	Span        int     // last - first, in days
	Mode        ThinMode
	Ticks       []DateTick
}

// NewCalendarAxis builds the axis over every position referenced by series.
// Positions must parse with ParseDate.
func NewCalendarAxis(series []Series) (*CalendarAxis, error) {
	seen := make(map[string]bool)
	var days []int
	for _, s := range series {
		for _, e := range s.Entries {
			if seen[e.Position] {
				continue
			}
			seen[e.Position] = true
			t, err := ParseDate(e.Position)
			if err != nil {
				return nil, invalidArg("position", e.Position, "series %q: %v", s.Name, err)
			}
			days = append(days, DayIndex(t))
		}
	}
	return CalendarAxisForDays(days), nil
}

// CalendarAxisForDays builds the axis over day indexes. Duplicates are
// ignored; an empty input yields an axis without ticks.
func CalendarAxisForDays(days []int) *CalendarAxis {
	axis := &CalendarAxis{Days: distinctSorted(days)}
	if len(axis.Days) == 0 {
		return axis
	}

	first := axis.Days[0]
	last := axis.Days[len(axis.Days)-1]
	axis.ExtendedMin = float64(first) - 0.5
	axis.ExtendedMax = float64(last) + 0.5
	axis.Span = last - first

	switch {
	case axis.Span < dailySpanLimit:
		axis.Mode = ThinDaily
	case axis.Span <= weeklySpanLimit:
		axis.Mode = ThinWeekly
	default:
		axis.Mode = ThinMonthly
	}

	var rendered []int
	if axis.Mode == ThinDaily {
		rendered = axis.Days
	} else {
		for d := first; d <= last; d++ {
			date := DayDate(d)
			keep := d == first || d == last || date.Day() == 1
			if axis.Mode == ThinWeekly && date.Weekday() == time.Sunday {
				keep = true
			}
			if keep {
				rendered = append(rendered, d)
			}
		}
	}

	axis.Ticks = labelDates(rendered)
	return axis
}

// labelDates assigns two-line labels. The second line only appears on the
// first tick and where the year or month changes.
func labelDates(days []int) []DateTick {
	ticks := make([]DateTick, len(days))
	var prev time.Time
	for i, d := range days {
		date := DayDate(d)
		tick := DateTick{
			Day:       d,
			Date:      date,
			FirstLine: strconv.Itoa(date.Day()),
		}
		switch {
		case i == 0 || date.Year() != prev.Year():
			tick.SecondLine = date.Format("2006/01/02")
		case date.Month() != prev.Month():
			tick.SecondLine = date.Format("01/02")
		}
		ticks[i] = tick
		prev = date
	}
	return ticks
}

// Position maps a day (fractional days allowed) into [0,width] across the
// extended domain.
func (a *CalendarAxis) Position(day float64, width float64) float64 {
	span := a.ExtendedMax - a.ExtendedMin
	if span <= 0 {
		return 0
	}
	return (day - a.ExtendedMin) / span * width
}

func distinctSorted(days []int) []int {
	if len(days) == 0 {
		return nil
	}
	out := make([]int, len(days))
	copy(out, days)
	sort.Ints(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
