package timestamp

import "time"

// Granularity enumerates the precision levels understood by the parser.
type Granularity int

// Granularities ordered from least to most precise.
const (
	GranularityYear Granularity = iota + 1
	GranularityMonth
	GranularityDay
	GranularityHour
	GranularityMinute
	GranularitySecond
)

var granularityNames = map[Granularity]string{
	GranularityYear:   "year",
	GranularityMonth:  "month",
	GranularityDay:    "day",
	GranularityHour:   "hour",
	GranularityMinute: "minute",
	GranularitySecond: "second",
}

// String returns the lower-case name of the granularity.
func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}
	return "unknown"
}

// Parsed is a timestamp holding only the components present in the input.
// It is implemented by exactly the six variant types declared below.
type Parsed interface {
	Granularity() Granularity
	sealed()
}

// Year holds a bare year.
type Year struct {
	Year int
}

// YearMonth holds a year and month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthDay holds a calendar date. Day is not yet checked against Month.
type YearMonthDay struct {
	Year  int
	Month time.Month
	Day   int
}

// YearMonthDayHour holds a date and a 24-hour clock hour.
type YearMonthDayHour struct {
	Year  int
	Month time.Month
	Day   int
	Hour  int
}

// YearMonthDayHourMinute holds a date, hour and minute.
type YearMonthDayHourMinute struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// YearMonthDayHourMinuteSecond holds a full timestamp without fractions or zone.
type YearMonthDayHourMinuteSecond struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// Granularity reports the finest component the variant carries.
func (Year) Granularity() Granularity                         { return GranularityYear }
func (YearMonth) Granularity() Granularity                    { return GranularityMonth }
func (YearMonthDay) Granularity() Granularity                 { return GranularityDay }
func (YearMonthDayHour) Granularity() Granularity             { return GranularityHour }
func (YearMonthDayHourMinute) Granularity() Granularity       { return GranularityMinute }
func (YearMonthDayHourMinuteSecond) Granularity() Granularity { return GranularitySecond }

func (Year) sealed()                         {}
func (YearMonth) sealed()                    {}
func (YearMonthDay) sealed()                 {}
func (YearMonthDayHour) sealed()             {}
func (YearMonthDayHourMinute) sealed()       {}
func (YearMonthDayHourMinuteSecond) sealed() {}
