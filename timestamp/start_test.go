package timestamp

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC)
}

func TestParseStartCanonicalInputs(t *testing.T) {
	cases := []struct {
		input       string
		want        time.Time
		granularity Granularity
	}{
		{"2023", utc(2023, time.January, 1, 0, 0, 0), GranularityYear},
		{"2023-02", utc(2023, time.February, 1, 0, 0, 0), GranularityMonth},
		{"2023-02-03", utc(2023, time.February, 3, 0, 0, 0), GranularityDay},
		{"2023-02-03 4", utc(2023, time.February, 3, 4, 0, 0), GranularityHour},
		{"2023-02-03 04", utc(2023, time.February, 3, 4, 0, 0), GranularityHour},
		{"2023-02-03 4:05", utc(2023, time.February, 3, 4, 5, 0), GranularityMinute},
		{"2023-02-03 04:05", utc(2023, time.February, 3, 4, 5, 0), GranularityMinute},
		{"2023-02-03 04:05:06", utc(2023, time.February, 3, 4, 5, 6), GranularitySecond},
		{"2023-02-03 4:05:06", utc(2023, time.February, 3, 4, 5, 6), GranularitySecond},
		{"2023-02-03T04:05:06", utc(2023, time.February, 3, 4, 5, 6), GranularitySecond},
		{"2023-02-03 16:05:06", utc(2023, time.February, 3, 16, 5, 6), GranularitySecond},
		{"2024-02-29", utc(2024, time.February, 29, 0, 0, 0), GranularityDay},
		{"-0001", utc(-1, time.January, 1, 0, 0, 0), GranularityYear},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseStart(tc.input)
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got.Time()), "want %s, got %s", tc.want, got.Time())
			require.Equal(t, time.UTC, got.Time().Location())
			require.Equal(t, tc.granularity, got.Granularity())
		})
	}
}

func TestParseStartRoundTripsThroughFullPrecisionGrammar(t *testing.T) {
	for _, input := range []string{"2023", "2023-02", "2023-02-03", "2023-02-03 4", "2023-02-03 4:05", "2023-02-03 04:05:06", "-0001-12"} {
		first, err := ParseStart(input)
		require.NoError(t, err)

		parsed, err := ParseYearMonthDayHourMinuteSecond(first.String())
		require.NoError(t, err, "canonical form %q", first.String())
		second, err := StartOf(parsed)
		require.NoError(t, err)
		require.True(t, first.Time().Equal(second.Time()))
	}
}

func TestStartOfUsesMinimumForOmittedFields(t *testing.T) {
	cases := []struct {
		name string
		in   Parsed
		want time.Time
	}{
		{"year", Year{Year: 1999}, utc(1999, time.January, 1, 0, 0, 0)},
		{"month", YearMonth{Year: 1999, Month: time.December}, utc(1999, time.December, 1, 0, 0, 0)},
		{"day", YearMonthDay{Year: 1999, Month: time.December, Day: 31}, utc(1999, time.December, 31, 0, 0, 0)},
		{"hour", YearMonthDayHour{Year: 1999, Month: time.December, Day: 31, Hour: 23}, utc(1999, time.December, 31, 23, 0, 0)},
		{"minute", YearMonthDayHourMinute{Year: 1999, Month: time.December, Day: 31, Hour: 23, Minute: 59}, utc(1999, time.December, 31, 23, 59, 0)},
		{"second", YearMonthDayHourMinuteSecond{Year: 1999, Month: time.December, Day: 31, Hour: 23, Minute: 59, Second: 59}, utc(1999, time.December, 31, 23, 59, 59)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StartOf(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Time())
			require.Zero(t, got.Time().Nanosecond())
		})
	}
}

func TestStartOfRejectsInvalidCalendarCombinations(t *testing.T) {
	cases := []struct {
		name  string
		input Parsed
		want  RangeError
	}{
		{"february thirtieth", YearMonthDay{Year: 2023, Month: time.February, Day: 30}, RangeError{Component: "day", Value: 30, Min: 1, Max: 28}},
		{"non leap february", YearMonthDay{Year: 2023, Month: time.February, Day: 29}, RangeError{Component: "day", Value: 29, Min: 1, Max: 28}},
		{"april thirty first", YearMonthDayHour{Year: 2023, Month: time.April, Day: 31, Hour: 1}, RangeError{Component: "day", Value: 31, Min: 1, Max: 30}},
		{"month thirteen", YearMonth{Year: 2023, Month: 13}, RangeError{Component: "month", Value: 13, Min: 1, Max: 12}},
		{"hour twenty five", YearMonthDayHour{Year: 2023, Month: time.March, Day: 1, Hour: 25}, RangeError{Component: "hour", Value: 25, Min: 0, Max: 23}},
		{"negative minute", YearMonthDayHourMinute{Year: 2023, Month: time.March, Day: 1, Minute: -1}, RangeError{Component: "minute", Value: -1, Min: 0, Max: 59}},
		{"second sixty", YearMonthDayHourMinuteSecond{Year: 2023, Month: time.March, Day: 1, Second: 60}, RangeError{Component: "second", Value: 60, Min: 0, Max: 59}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StartOf(tc.input)
			require.True(t, got.IsZero())
			require.ErrorIs(t, err, ErrOutOfRange)
			require.Equal(t, KindOutOfRange, Kind(err))
			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			require.Equal(t, tc.want, *rangeErr)
		})
	}
}

func TestParseStartOutOfRange(t *testing.T) {
	_, err := ParseStart("2023-02-30")
	require.ErrorIs(t, err, ErrOutOfRange)
	require.False(t, errors.Is(err, ErrUnknownFormat))
	require.EqualError(t, err, "out of range: day must be in the range 1..28, got 30")
}

func TestParseStartUnknownFormat(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2023-13", "2023-02-03 04:05:06 extra", "23", "2023-02-03 4pm", "1700000000", "2023-W05"} {
		t.Run(input, func(t *testing.T) {
			got, err := ParseStart(input)
			require.True(t, got.IsZero())
			require.ErrorIs(t, err, ErrUnknownFormat)
			require.Equal(t, KindUnknownFormat, Kind(err))
			var matchErr *MatchError
			require.False(t, errors.As(err, &matchErr))
		})
	}
}

func TestStartOfPanicsOnForeignVariant(t *testing.T) {
	require.Panics(t, func() { _, _ = StartOf(nil) })
	require.Panics(t, func() { _, _ = StartOf((*Year)(nil)) })
}

func TestStartOfAcceptsPointerVariants(t *testing.T) {
	cases := []struct {
		in   Parsed
		want time.Time
	}{
		{&Year{Year: 2023}, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{&YearMonth{Year: 2023, Month: time.February}, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{&YearMonthDay{Year: 2023, Month: time.February, Day: 3}, time.Date(2023, time.February, 3, 0, 0, 0, 0, time.UTC)},
		{&YearMonthDayHour{Year: 2023, Month: time.February, Day: 3, Hour: 4}, time.Date(2023, time.February, 3, 4, 0, 0, 0, time.UTC)},
		{&YearMonthDayHourMinute{Year: 2023, Month: time.February, Day: 3, Hour: 4, Minute: 5}, time.Date(2023, time.February, 3, 4, 5, 0, 0, time.UTC)},
		{&YearMonthDayHourMinuteSecond{Year: 2023, Month: time.February, Day: 3, Hour: 4, Minute: 5, Second: 6}, time.Date(2023, time.February, 3, 4, 5, 6, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%T", tc.in), func(t *testing.T) {
			got, err := StartOf(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Time())
			require.Equal(t, tc.in.Granularity(), got.Granularity())
		})
	}

	_, err := StartOf(&YearMonthDay{Year: 2023, Month: time.February, Day: 30})
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestStartTextMarshaling(t *testing.T) {
	var payload struct {
		Since Start `json:"since"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"since":"2023-02"}`), &payload))
	assert.Equal(t, utc(2023, time.February, 1, 0, 0, 0), payload.Since.Time())
	assert.Equal(t, GranularityMonth, payload.Since.Granularity())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"since":"2023-02-01T00:00:00"}`, string(out))

	err = json.Unmarshal([]byte(`{"since":"2023-02-30"}`), &payload)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindNone, Kind(nil))
	assert.Equal(t, KindNone, Kind(errors.New("boom")))
	assert.Equal(t, KindUnknownFormat, Kind(ErrUnknownFormat))
	assert.Equal(t, KindOutOfRange, Kind(&RangeError{Component: "day"}))
	assert.Equal(t, "out_of_range", KindOutOfRange.String())
	assert.Equal(t, "unknown_format", KindUnknownFormat.String())
}

func TestGranularityString(t *testing.T) {
	assert.Equal(t, "year", GranularityYear.String())
	assert.Equal(t, "second", GranularitySecond.String())
	assert.Equal(t, "unknown", Granularity(0).String())
}
