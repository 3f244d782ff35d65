package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

func writeJSON(stdout, stderr io.Writer, command string, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: encode json: %v\n", command, err)
		return ExitUsage
	}
	return ExitOK
}
