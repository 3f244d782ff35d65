// Package timestamp parses CLI friendly, variable precision timestamps.
//
// Six grammars are recognised, from least to most precise:
//
//	2023
//	2023-02
//	2023-02-03
//	2023-02-03 4          (or 2023-02-03T04)
//	2023-02-03 4:05
//	2023-02-03 04:05:06
//
// Parse classifies the input into one of the Parsed variants. StartOf
// resolves a variant to the first instant it covers, in UTC:
//
//	s, err := timestamp.ParseStart("2023-02")
//	// s.Time() == 2023-02-01T00:00:00Z
//
// Errors fall in two families, ErrUnknownFormat and ErrOutOfRange; use
// errors.Is or Kind to tell them apart.
package timestamp
