package iso8583

import (
	"fmt"
	"time"
)

// Clock returns the current time used for the DATE10/DATE4 year-assignment
// and rollover rule; tests inject a fixed clock instead of depending on the
// real wall clock.
type Clock func() time.Time

func defaultClock() time.Time { return time.Now() }

// parseDate10 parses MMddHHmmss with no year, applying the +6-month rollback
// rule: the year is the current local year; if the resulting date would be
// more than six months in the future, it is rolled back one year. This
// handles the December/January wrap for settlement windows and is
// implemented verbatim per the source material's rule.
func parseDate10(s string, now time.Time) (time.Time, error) {
	if len(s) != 10 {
		return time.Time{}, fmt.Errorf("DATE10 requires 10 digits, got %d", len(s))
	}
	month, day, hour, min, sec, err := splitMMddHHmmss(s)
	if err != nil {
		return time.Time{}, err
	}
	return rollback(now, month, day, hour, min, sec), nil
}

// parseDate4 parses MMdd with no year, applying the same rollback rule.
func parseDate4(s string, now time.Time) (time.Time, error) {
	if len(s) != 4 {
		return time.Time{}, fmt.Errorf("DATE4 requires 4 digits, got %d", len(s))
	}
	month, err := digits(s[0:2])
	if err != nil {
		return time.Time{}, err
	}
	day, err := digits(s[2:4])
	if err != nil {
		return time.Time{}, err
	}
	return rollback(now, month, day, 0, 0, 0), nil
}

func splitMMddHHmmss(s string) (month, day, hour, min, sec int, err error) {
	fields := []struct {
		s   string
		dst *int
	}{
		{s[0:2], &month}, {s[2:4], &day}, {s[4:6], &hour}, {s[6:8], &min}, {s[8:10], &sec},
	}
	for _, f := range fields {
		v, derr := digits(f.s)
		if derr != nil {
			return 0, 0, 0, 0, 0, derr
		}
		*f.dst = v
	}
	return
}

func digits(s string) (int, error) {
	n, ok := parseASCIIDigits([]byte(s))
	if !ok {
		return 0, fmt.Errorf("non-digit character in date field %q", s)
	}
	return n, nil
}

func rollback(now time.Time, month, day, hour, min, sec int) time.Time {
	year := now.Year()
	candidate := time.Date(year, time.Month(month), day, hour, min, sec, 0, now.Location())
	if candidate.Sub(now) > 6*30*24*time.Hour {
		candidate = time.Date(year-1, time.Month(month), day, hour, min, sec, 0, now.Location())
	}
	return candidate
}

// formatDate10 renders t as MMddHHmmss.
func formatDate10(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d%02d%02d", t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// formatDate4 renders t as MMdd.
func formatDate4(t time.Time) string {
	return fmt.Sprintf("%02d%02d", t.Month(), t.Day())
}

// parseDateExp parses yyMM (card expiry, no rollover rule applies — expiry
// dates carry their own two-digit year).
func parseDateExp(s string) (time.Time, error) {
	if len(s) != 4 {
		return time.Time{}, fmt.Errorf("DATE_EXP requires 4 digits, got %d", len(s))
	}
	yy, err := digits(s[0:2])
	if err != nil {
		return time.Time{}, err
	}
	mm, err := digits(s[2:4])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(2000+yy, time.Month(mm), 1, 0, 0, 0, 0, time.UTC), nil
}

func formatDateExp(t time.Time) string {
	return fmt.Sprintf("%02d%02d", t.Year()%100, t.Month())
}

// parseTime parses HHmmss.
func parseTime(s string) (time.Time, error) {
	if len(s) != 6 {
		return time.Time{}, fmt.Errorf("TIME requires 6 digits, got %d", len(s))
	}
	hh, err := digits(s[0:2])
	if err != nil {
		return time.Time{}, err
	}
	mm, err := digits(s[2:4])
	if err != nil {
		return time.Time{}, err
	}
	ss, err := digits(s[4:6])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(0, 1, 1, hh, mm, ss, 0, time.UTC), nil
}

func formatTime(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", t.Hour(), t.Minute(), t.Second())
}

// buildDateValue wraps a time.Time into a FieldValue for one of the date/time
// kinds, used by Message.SetValue.
func buildDateValue(kind IsoType, raw any) (FieldValue, error) {
	t, ok := raw.(time.Time)
	if !ok {
		return nil, fmt.Errorf("%s requires a time.Time value, got %T", kind, raw)
	}
	switch kind {
	case DATE10:
		s := formatDate10(t)
		return NewIsoValue(kind, t, 10, []byte(s)), nil
	case DATE4:
		s := formatDate4(t)
		return NewIsoValue(kind, t, 4, []byte(s)), nil
	case DATE_EXP:
		s := formatDateExp(t)
		return NewIsoValue(kind, t, 4, []byte(s)), nil
	case TIME:
		s := formatTime(t)
		return NewIsoValue(kind, t, 6, []byte(s)), nil
	}
	return nil, fmt.Errorf("unsupported date kind %s", kind)
}
