package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/flextime/internal/app"
	"github.com/odyssey-erp/flextime/internal/resolve"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	code := Execute(context.Background(), &app.Config{BatchMaxConcurrency: 2}, nil, args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestStartCommandTable(t *testing.T) {
	code, stdout, stderr := run(t, "start", "2023", "2023-02-03 4:05")
	require.Equal(t, ExitOK, code)
	require.Empty(t, stderr)
	require.Contains(t, stdout, "2023-01-01T00:00:00Z")
	require.Contains(t, stdout, "2023-02-03T04:05:00Z")
	require.Contains(t, stdout, "minute")
}

func TestStartCommandReportsFailures(t *testing.T) {
	code, stdout, _ := run(t, "start", "2023", "not-a-date")
	require.Equal(t, ExitInvalid, code)
	require.Contains(t, stdout, "error: unknown format")
}

func TestStartCommandJSON(t *testing.T) {
	code, stdout, stderr := run(t, "start", "--json", "2023-02", "2023-02-30", "2023-02-03T04:05:06")
	require.Equal(t, ExitInvalid, code)
	require.Empty(t, stderr)

	var rows []StartRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Equal(t, []StartRow{
		{Input: "2023-02", Granularity: "month", Start: "2023-02-01T00:00:00Z"},
		{Input: "2023-02-30", Error: "out of range: day must be in the range 1..28, got 30", ErrorKind: "out_of_range"},
		{Input: "2023-02-03T04:05:06", Granularity: "second", Start: "2023-02-03T04:05:06Z"},
	}, rows)
}

func TestStartCommandAcceptsArbitraryArguments(t *testing.T) {
	long := "2023-02-03T04:05:06" + strings.Repeat("0", 60)
	code, stdout, stderr := run(t, "start", "--json", "2023", long)
	require.Equal(t, ExitInvalid, code)
	require.Empty(t, stderr)

	var rows []StartRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 2)
	require.Equal(t, long, rows[1].Input)
	require.Equal(t, "unknown_format", rows[1].ErrorKind)

	args := []string{"start", "--json"}
	for range 101 {
		args = append(args, "2023")
	}
	code, stdout, stderr = run(t, args...)
	require.Equal(t, ExitOK, code, stderr)
	rows = nil
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 101)
}

func TestStartCommandRequiresValues(t *testing.T) {
	code, _, stderr := run(t, "start")
	require.Equal(t, ExitUsage, code)
	require.Contains(t, stderr, "requires at least 1 arg")

	stderrBuf := new(bytes.Buffer)
	cli := NewResolveCLI(resolve.NewService(nil, nil, resolve.ServiceConfig{}))
	code = cli.StartCommand(context.Background(), StartOptions{Stdout: new(bytes.Buffer), Stderr: stderrBuf})
	require.Equal(t, ExitUsage, code)
	require.Contains(t, stderrBuf.String(), "at least one value is required")
}

func TestRangeCommand(t *testing.T) {
	code, stdout, stderr := run(t, "range", "--since", "2023", "--until", "2023-06")
	require.Equal(t, ExitOK, code, stderr)
	require.Equal(t, "since: 2023-01-01T00:00:00Z\nuntil: 2023-06-01T00:00:00Z\n", stdout)

	code, stdout, _ = run(t, "range", "--since", "2023-02-03 4")
	require.Equal(t, ExitOK, code)
	require.Equal(t, "since: 2023-02-03T04:00:00Z\nuntil: (open)\n", stdout)
}

func TestRangeCommandJSON(t *testing.T) {
	code, stdout, _ := run(t, "--json", "range", "--since", "2023-02", "--until", "2023-02-03")
	require.Equal(t, ExitOK, code)
	require.JSONEq(t, `{"since":"2023-02-01T00:00:00Z","until":"2023-02-03T00:00:00Z"}`, stdout)
}

func TestRangeCommandErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"reversed", []string{"range", "--since", "2024", "--until", "2023"}, "until must not be earlier than since"},
		{"unknown format", []string{"range", "--since", "yesterday"}, `invalid argument "yesterday" for "--since" flag: unknown format`},
		{"out of range", []string{"range", "--since", "2023-02-29"}, "out of range: day must be in the range 1..28, got 29"},
		{"missing since", []string{"range"}, `required flag(s) "since" not set`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := run(t, tc.args...)
			require.Equal(t, ExitUsage, code)
			require.Contains(t, stderr, tc.want)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := run(t, "version")
	require.Equal(t, ExitOK, code)
	require.Equal(t, fmt.Sprintf("flextime version %s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime), stdout)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ServeOptions{
			Config:   &app.Config{AppEnv: "test", RateLimitPerMinute: 60, AppReadTimeout: time.Second, AppWriteTimeout: time.Second},
			Listener: ln,
		})
	}()

	url := fmt.Sprintf("http://%s/v1/start?value=2023-02", ln.Addr())
	resp, err := http.Get(url)
	require.NoError(t, err)
	var body struct {
		Start time.Time `json:"start"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), body.Start.UTC())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeRequiresConfig(t *testing.T) {
	require.Error(t, Serve(context.Background(), ServeOptions{}))
}
