package timestamp

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Layout is the canonical rendering of a Start. It is accepted back by
// ParseYearMonthDayHourMinuteSecond.
const Layout = "2006-01-02T15:04:05"

// Start is a calendar-valid UTC instant aligned with the start of a Parsed
// timestamp: every omitted component takes its minimum value.
type Start struct {
	t           time.Time
	granularity Granularity
}

// Time returns the instant in UTC.
func (s Start) Time() time.Time { return s.t }

// Granularity reports the precision of the input the timestamp was built from.
func (s Start) Granularity() Granularity { return s.granularity }

// IsZero reports whether s was never assigned.
func (s Start) IsZero() bool { return s.granularity == 0 }

// String renders s using Layout. The result parses back to the same Start.
func (s Start) String() string {
	return s.t.Format(Layout)
}

// MarshalText implements encoding.TextMarshaler using Layout.
func (s Start) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts any of the supported grammars.
func (s *Start) UnmarshalText(text []byte) error {
	parsed, err := ParseStart(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StartOf converts p into a Start by substituting January, day 1 and
// midnight for the omitted components. Pointers to the variants are
// accepted as well.
func StartOf(p Parsed) (Start, error) {
	var (
		date  civil.Date
		clock civil.Time
	)
	p = deref(p)
	switch v := p.(type) {
	case Year:
		date = civil.Date{Year: v.Year, Month: time.January, Day: 1}
	case YearMonth:
		date = civil.Date{Year: v.Year, Month: v.Month, Day: 1}
	case YearMonthDay:
		date = civil.Date{Year: v.Year, Month: v.Month, Day: v.Day}
	case YearMonthDayHour:
		date = civil.Date{Year: v.Year, Month: v.Month, Day: v.Day}
		clock = civil.Time{Hour: v.Hour}
	case YearMonthDayHourMinute:
		date = civil.Date{Year: v.Year, Month: v.Month, Day: v.Day}
		clock = civil.Time{Hour: v.Hour, Minute: v.Minute}
	case YearMonthDayHourMinuteSecond:
		date = civil.Date{Year: v.Year, Month: v.Month, Day: v.Day}
		clock = civil.Time{Hour: v.Hour, Minute: v.Minute, Second: v.Second}
	default:
		panic(fmt.Sprintf("timestamp: unhandled variant %T", p))
	}
	if err := checkDate(date); err != nil {
		return Start{}, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	if err := checkClock(clock); err != nil {
		return Start{}, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	dt := civil.DateTime{Date: date, Time: clock}
	return Start{t: dt.In(time.UTC), granularity: p.Granularity()}, nil
}

// deref turns a non-nil pointer variant into its value. A nil pointer
// becomes a nil Parsed.
func deref(p Parsed) Parsed {
	switch v := p.(type) {
	case *Year:
		if v != nil {
			return *v
		}
	case *YearMonth:
		if v != nil {
			return *v
		}
	case *YearMonthDay:
		if v != nil {
			return *v
		}
	case *YearMonthDayHour:
		if v != nil {
			return *v
		}
	case *YearMonthDayHourMinute:
		if v != nil {
			return *v
		}
	case *YearMonthDayHourMinuteSecond:
		if v != nil {
			return *v
		}
	default:
		return p
	}
	return nil
}

// ParseStart parses text and converts it to its start boundary.
func ParseStart(text string) (Start, error) {
	p, err := Parse(text)
	if err != nil {
		return Start{}, err
	}
	return StartOf(p)
}

func checkDate(d civil.Date) error {
	if d.IsValid() {
		return nil
	}
	if d.Month < time.January || d.Month > time.December {
		return &RangeError{Component: "month", Value: int(d.Month), Min: 1, Max: 12}
	}
	return &RangeError{Component: "day", Value: d.Day, Min: 1, Max: daysIn(d.Year, d.Month)}
}

func checkClock(t civil.Time) error {
	if t.IsValid() {
		return nil
	}
	switch {
	case t.Hour < 0 || t.Hour > 23:
		return &RangeError{Component: "hour", Value: t.Hour, Min: 0, Max: 23}
	case t.Minute < 0 || t.Minute > 59:
		return &RangeError{Component: "minute", Value: t.Minute, Min: 0, Max: 59}
	case t.Second < 0 || t.Second > 59:
		return &RangeError{Component: "second", Value: t.Second, Min: 0, Max: 59}
	default:
		return &RangeError{Component: "nanosecond", Value: t.Nanosecond, Min: 0, Max: 999999999}
	}
}

func daysIn(year int, month time.Month) int {
	return civil.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)).Day
}
