package pagecheck

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Report struct {
	Path string
	URI  string
	Logs []string
	// StateKeys is nil when the page has no global state object.
	StateKeys []string
	HasState  bool
	// BaselineDiff is the rendered difference against the expected state
	// keys, empty when they match or no baseline covers the page.
	BaselineDiff string
}

// Clean reports whether the page logged nothing and matched its baseline.
func (r *Report) Clean() bool {
	return len(r.Logs) == 0 && r.BaselineDiff == ""
}

func WriteReport(w io.Writer, r *Report) error {
	stateKeys := "null"
	if r.HasState {
		stateKeys = quoteList(r.StateKeys)
	}

	_, err := fmt.Fprintf(w, "%s\n logs: %s\n state keys: %s\n", r.Path, quoteList(r.Logs), stateKeys)
	if err != nil {
		return err
	}

	if r.BaselineDiff != "" {
		_, err = fmt.Fprintf(w, " baseline diff:\n%s", indent(r.BaselineDiff, "   "))
	}

	return err
}

func quoteList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, strconv.Quote(item))
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}

	return b.String()
}
