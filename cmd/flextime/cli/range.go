package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/odyssey-erp/flextime/internal/resolve"
	"github.com/odyssey-erp/flextime/timestamp"
)

// RangeOptions configures the range command execution. Until is optional.
type RangeOptions struct {
	Since      timestamp.Start
	Until      *timestamp.Start
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// RangeCommand validates and prints a since/until pair.
func (c *ResolveCLI) RangeCommand(opts RangeOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Since.IsZero() {
		_, _ = fmt.Fprintln(opts.Stderr, "flextime range: --since is required")
		return ExitUsage
	}
	rng, err := c.service.NewRange(opts.Since, opts.Until)
	if err != nil {
		if errors.Is(err, resolve.ErrInvalidRange) {
			_, _ = fmt.Fprintf(opts.Stderr, "flextime range: %v (since %s, until %s)\n", err, opts.Since, opts.Until)
			return ExitUsage
		}
		_, _ = fmt.Fprintf(opts.Stderr, "flextime range: %v\n", err)
		return ExitUsage
	}
	if opts.JSONOutput {
		return writeJSON(opts.Stdout, opts.Stderr, "flextime range", rng)
	}
	_, _ = fmt.Fprintf(opts.Stdout, "since: %s\n", rng.Since.Format(time.RFC3339))
	if rng.Until != nil {
		_, _ = fmt.Fprintf(opts.Stdout, "until: %s\n", rng.Until.Format(time.RFC3339))
	} else {
		_, _ = fmt.Fprintln(opts.Stdout, "until: (open)")
	}
	return ExitOK
}
