package timestamp

// matchers lists the grammars from most to least precise.
var matchers = []func(string) (Parsed, error){
	ParseYearMonthDayHourMinuteSecond,
	ParseYearMonthDayHourMinute,
	ParseYearMonthDayHour,
	ParseYearMonthDay,
	ParseYearMonth,
	ParseYear,
}

// Parse classifies text against the supported grammars, most precise first,
// and returns the first full match. When nothing matches it returns
// ErrUnknownFormat; the individual matcher failures are discarded.
func Parse(text string) (Parsed, error) {
	for _, m := range matchers {
		if p, err := m(text); err == nil {
			return p, nil
		}
	}
	return nil, ErrUnknownFormat
}
