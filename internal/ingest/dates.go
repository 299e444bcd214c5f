package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	serialRe  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// excelEpoch is the legacy exports' day-zero. The serial counts carry the
// spreadsheet 1900-leap-year bug, so two days are subtracted instead of one
// when converting; changing this breaks every date in the historical files.
var excelEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// NormalizeDate converts a raw cell value (Excel serial number, DD/MM/YYYY,
// or free text) into a zero-padded YYYY-MM-DD string. Returns "" when the
// value is unparsable; callers log a warning and continue, never abort.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if serialRe.MatchString(raw) {
		serial, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			days := int(math.Floor(serial)) - 2
			d := excelEpoch.AddDate(0, 0, days)
			if d.Year() > 1900 && d.Year() < 2100 {
				return d.Format("2006-01-02")
			}
		}
		return ""
	}

	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		if len(parts) != 3 {
			return ""
		}
		day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return ""
		}
		if year < 100 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		if day < 1 || day > 31 || month < 1 || month > 12 || year <= 1900 {
			return ""
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}

	return parseTextDate(raw)
}

// parseTextDate attempts a generic calendar-date parse of free text.
func parseTextDate(raw string) string {
	formats := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2 January 2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"02-01-2006",
		"02-Jan-2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// DateRange is the result of validating a raw (start, end) pair.
type DateRange struct {
	Start   string
	End     string
	Swapped bool
	Valid   bool
	Error   string
}

// ValidateDateRange normalizes both sides, mirrors a missing side onto the
// other (single-day event), and swap-repairs an inverted pair. A swap is a
// recoverable repair, not a failure: the range stays valid but Swapped is
// set so callers can log it for audit.
func ValidateDateRange(rawStart, rawEnd string) DateRange {
	start := NormalizeDate(rawStart)
	end := NormalizeDate(rawEnd)

	if start == "" && end == "" {
		return DateRange{Error: "start and end dates are both missing or invalid"}
	}
	if start == "" {
		start = end
	}
	if end == "" {
		end = start
	}

	if !isRealDate(start) || !isRealDate(end) {
		return DateRange{Error: "normalized date is not a real calendar date"}
	}

	// YYYY-MM-DD compares correctly as a string.
	if start > end {
		return DateRange{Start: end, End: start, Swapped: true, Valid: true}
	}
	return DateRange{Start: start, End: end, Valid: true}
}

func isRealDate(s string) bool {
	if !isoDateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
