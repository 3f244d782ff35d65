package timestamp

import "time"

// component is one element of a grammar: either a typed field or a literal separator.
type component int

const (
	fieldYear component = iota
	fieldMonth
	fieldDay
	fieldHour
	fieldMinute
	fieldSecond
	literalDash
	literalColon
	// literalDateTime accepts either 'T' or a single space.
	literalDateTime
)

var componentNames = [...]string{
	fieldYear:       "year",
	fieldMonth:      "month",
	fieldDay:        "day",
	fieldHour:       "hour",
	fieldMinute:     "minute",
	fieldSecond:     "second",
	literalDash:     "'-'",
	literalColon:    "':'",
	literalDateTime: "'T' or ' '",
}

type grammar []component

var (
	grammarYear   = grammar{fieldYear}
	grammarMonth  = grammar{fieldYear, literalDash, fieldMonth}
	grammarDay    = grammar{fieldYear, literalDash, fieldMonth, literalDash, fieldDay}
	grammarHour   = append(grammarDay[:len(grammarDay):len(grammarDay)], literalDateTime, fieldHour)
	grammarMinute = append(grammarHour[:len(grammarHour):len(grammarHour)], literalColon, fieldMinute)
	grammarSecond = append(grammarMinute[:len(grammarMinute):len(grammarMinute)], literalColon, fieldSecond)
)

// fields collects the values recovered while scanning a grammar.
type fields struct {
	values [fieldSecond + 1]int
	set    [fieldSecond + 1]bool
}

func (f *fields) get(c component) (int, bool) {
	return f.values[c], f.set[c]
}

func (f *fields) year() (int, bool) { return f.get(fieldYear) }

func (f *fields) month() (time.Month, bool) {
	m, ok := f.get(fieldMonth)
	return time.Month(m), ok
}

func (f *fields) day() (int, bool)    { return f.get(fieldDay) }
func (f *fields) hour() (int, bool)   { return f.get(fieldHour) }
func (f *fields) minute() (int, bool) { return f.get(fieldMinute) }
func (f *fields) second() (int, bool) { return f.get(fieldSecond) }

// scanner walks the input left to right. It never backtracks.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) fail(c component) error {
	return &MatchError{Reason: ReasonFormat, Component: componentNames[c], Offset: s.pos}
}

func (s *scanner) literal(c component, accept ...byte) error {
	if s.pos < len(s.input) {
		for _, b := range accept {
			if s.input[s.pos] == b {
				s.pos++
				return nil
			}
		}
	}
	return s.fail(c)
}

// digits consumes between minDigits and maxDigits ASCII digits, greedily.
func (s *scanner) digits(minDigits, maxDigits int) (int, bool) {
	n, value := 0, 0
	for n < maxDigits && s.pos+n < len(s.input) {
		b := s.input[s.pos+n]
		if b < '0' || b > '9' {
			break
		}
		value = value*10 + int(b-'0')
		n++
	}
	if n < minDigits {
		return 0, false
	}
	s.pos += n
	return value, true
}

func (s *scanner) number(c component, minDigits, maxDigits, lo, hi int) (int, error) {
	start := s.pos
	v, ok := s.digits(minDigits, maxDigits)
	if !ok || v < lo || v > hi {
		s.pos = start
		return 0, s.fail(c)
	}
	return v, nil
}

func (s *scanner) year() (int, error) {
	start := s.pos
	sign := 1
	if s.pos < len(s.input) && (s.input[s.pos] == '+' || s.input[s.pos] == '-') {
		if s.input[s.pos] == '-' {
			sign = -1
		}
		s.pos++
	}
	v, ok := s.digits(4, 4)
	if !ok {
		s.pos = start
		return 0, s.fail(fieldYear)
	}
	return sign * v, nil
}

func (s *scanner) field(c component) (int, error) {
	switch c {
	case fieldYear:
		return s.year()
	case fieldMonth:
		return s.number(c, 2, 2, 1, 12)
	case fieldDay:
		return s.number(c, 2, 2, 1, 31)
	case fieldHour:
		return s.number(c, 1, 2, 0, 23)
	default:
		return s.number(c, 2, 2, 0, 59)
	}
}

// scan matches the whole input against g.
func (g grammar) scan(input string) (fields, error) {
	var f fields
	s := scanner{input: input}
	for _, c := range g {
		switch c {
		case literalDash:
			if err := s.literal(c, '-'); err != nil {
				return f, err
			}
		case literalColon:
			if err := s.literal(c, ':'); err != nil {
				return f, err
			}
		case literalDateTime:
			if err := s.literal(c, 'T', ' '); err != nil {
				return f, err
			}
		default:
			v, err := s.field(c)
			if err != nil {
				return f, err
			}
			f.values[c], f.set[c] = v, true
		}
	}
	if s.pos != len(input) {
		return f, &MatchError{Reason: ReasonRemainingInformation, Offset: s.pos}
	}
	return f, nil
}

// match scans input with g and hands the recovered fields to build.
func match(input string, g grammar, build func(*fields) (Parsed, bool)) (Parsed, error) {
	f, err := g.scan(input)
	if err != nil {
		return nil, err
	}
	p, ok := build(&f)
	if !ok {
		return nil, &MatchError{Reason: ReasonMissingInformation}
	}
	return p, nil
}

// ParseYear matches "YYYY".
func ParseYear(input string) (Parsed, error) {
	return match(input, grammarYear, func(f *fields) (Parsed, bool) {
		y, ok := f.year()
		if !ok {
			return nil, false
		}
		return Year{Year: y}, true
	})
}

// ParseYearMonth matches "YYYY-MM".
func ParseYearMonth(input string) (Parsed, error) {
	return match(input, grammarMonth, func(f *fields) (Parsed, bool) {
		y, okY := f.year()
		m, okM := f.month()
		if !okY || !okM {
			return nil, false
		}
		return YearMonth{Year: y, Month: m}, true
	})
}

// ParseYearMonthDay matches "YYYY-MM-DD".
func ParseYearMonthDay(input string) (Parsed, error) {
	return match(input, grammarDay, func(f *fields) (Parsed, bool) {
		y, okY := f.year()
		m, okM := f.month()
		d, okD := f.day()
		if !okY || !okM || !okD {
			return nil, false
		}
		return YearMonthDay{Year: y, Month: m, Day: d}, true
	})
}

// ParseYearMonthDayHour matches "YYYY-MM-DD H" or "YYYY-MM-DDTH". The hour
// may be written with or without a leading zero.
func ParseYearMonthDayHour(input string) (Parsed, error) {
	return match(input, grammarHour, func(f *fields) (Parsed, bool) {
		y, okY := f.year()
		m, okM := f.month()
		d, okD := f.day()
		h, okH := f.hour()
		if !okY || !okM || !okD || !okH {
			return nil, false
		}
		return YearMonthDayHour{Year: y, Month: m, Day: d, Hour: h}, true
	})
}

// ParseYearMonthDayHourMinute matches "YYYY-MM-DD H:MM".
func ParseYearMonthDayHourMinute(input string) (Parsed, error) {
	return match(input, grammarMinute, func(f *fields) (Parsed, bool) {
		y, okY := f.year()
		m, okM := f.month()
		d, okD := f.day()
		h, okH := f.hour()
		mi, okMi := f.minute()
		if !okY || !okM || !okD || !okH || !okMi {
			return nil, false
		}
		return YearMonthDayHourMinute{Year: y, Month: m, Day: d, Hour: h, Minute: mi}, true
	})
}

// ParseYearMonthDayHourMinuteSecond matches "YYYY-MM-DD H:MM:SS".
func ParseYearMonthDayHourMinuteSecond(input string) (Parsed, error) {
	return match(input, grammarSecond, func(f *fields) (Parsed, bool) {
		y, okY := f.year()
		m, okM := f.month()
		d, okD := f.day()
		h, okH := f.hour()
		mi, okMi := f.minute()
		sec, okS := f.second()
		if !okY || !okM || !okD || !okH || !okMi || !okS {
			return nil, false
		}
		return YearMonthDayHourMinuteSecond{Year: y, Month: m, Day: d, Hour: h, Minute: mi, Second: sec}, true
	})
}
