package codec

import (
	"fmt"

	"matchcore/internal/engine"
)

// EchoPrefix and ResultPrefix implement a replay log: every input line
// is echoed prefixed before its results are printed, so a transcript of
// a run can be diffed byte-for-byte against a known-good run.
const (
	EchoPrefix   = "> "
	ResultPrefix = "< "
)

// FormatResult renders a MatchResult as wire lines: all fills in
// match-emission order, then all closed ids sorted ascending, for
// deterministic byte-exact replay comparison.
func FormatResult(now int64, result engine.MatchResult) []string {
	lines := make([]string, 0, len(result.Fills)+len(result.Closed))
	for _, f := range result.Fills {
		lines = append(lines, fmt.Sprintf("%d,fill,%s,%s,%s,%s",
			now, f.MakerID, f.TakerID, f.BaseAmount.String(), f.Price.String()))
	}
	for _, id := range result.SortedClosed() {
		lines = append(lines, fmt.Sprintf("%d,closed,%s", now, id))
	}
	return lines
}
