package timestamp

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag is a pflag.Value resolving its argument to a Start, so a command can
// declare flags such as --since 2023.
type Flag struct {
	start Start
}

var _ pflag.Value = (*Flag)(nil)

// Set parses value. An empty value clears the flag.
func (f *Flag) Set(value string) error {
	if value == "" {
		f.start = Start{}
		return nil
	}
	s, err := ParseStart(value)
	if err != nil {
		return err
	}
	f.start = s
	return nil
}

func (f *Flag) String() string {
	if f == nil || f.start.IsZero() {
		return ""
	}
	return f.start.String()
}

// Type names the value in pflag usage output.
func (f *Flag) Type() string { return "timestamp" }

// IsSet reports whether a non-empty value was assigned.
func (f *Flag) IsSet() bool { return !f.start.IsZero() }

// Start returns the parsed value; the zero Start when unset.
func (f *Flag) Start() Start { return f.start }

// Time returns the parsed instant; the zero time.Time when unset.
func (f *Flag) Time() time.Time { return f.start.Time() }
