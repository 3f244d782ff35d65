package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/odyssey-erp/flextime/internal/resolve"
	"github.com/odyssey-erp/flextime/timestamp"
)

// Exit codes shared by the commands.
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitInvalid = 2
)

// StartOptions configures the start command execution.
type StartOptions struct {
	Values     []string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// StartRow is one line of the start command output.
type StartRow struct {
	Input       string `json:"input"`
	Granularity string `json:"granularity,omitempty"`
	Start       string `json:"start,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorKind   string `json:"error_kind,omitempty"`
}

// ResolveCLI runs the resolution commands against a resolve.Service.
type ResolveCLI struct {
	service *resolve.Service
}

// NewResolveCLI constructs the command helper.
func NewResolveCLI(service *resolve.Service) *ResolveCLI {
	return &ResolveCLI{service: service}
}

// StartCommand prints the start boundary of every value. It returns
// ExitInvalid when at least one value could not be resolved.
func (c *ResolveCLI) StartCommand(ctx context.Context, opts StartOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if len(opts.Values) == 0 {
		_, _ = fmt.Fprintln(opts.Stderr, "flextime start: at least one value is required")
		return ExitUsage
	}
	results, err := c.service.ResolveAll(ctx, opts.Values)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "flextime start: %v\n", err)
		return ExitUsage
	}
	rows := make([]StartRow, len(results))
	exitCode := ExitOK
	for i, res := range results {
		row := StartRow{Input: res.Input}
		if res.Err != nil {
			row.Error = res.Err.Error()
			row.ErrorKind = timestamp.Kind(res.Err).String()
			exitCode = ExitInvalid
		} else {
			row.Granularity = res.Start.Granularity().String()
			row.Start = res.Start.Time().Format(time.RFC3339)
		}
		rows[i] = row
	}
	if opts.JSONOutput {
		if code := writeJSON(opts.Stdout, opts.Stderr, "flextime start", rows); code != ExitOK {
			return code
		}
		return exitCode
	}
	if err := renderStartTable(opts.Stdout, rows); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "flextime start: render table: %v\n", err)
		return ExitUsage
	}
	return exitCode
}

func renderStartTable(out io.Writer, rows []StartRow) error {
	data := make([][]string, len(rows))
	for i, row := range rows {
		result := row.Start
		if row.Error != "" {
			result = "error: " + row.Error
		}
		data[i] = []string{row.Input, row.Granularity, result}
	}
	table := tablewriter.NewWriter(out)
	table.Header([]string{"Input", "Granularity", "Start"})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
