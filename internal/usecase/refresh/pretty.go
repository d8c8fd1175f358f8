package refresh

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

func ansi(code string, s string) string { return "\x1b[" + code + "m" + s + "\x1b[0m" }

func green(s string) string  { return ansi("32", s) }
func yellow(s string) string { return ansi("33", s) }
func red(s string) string    { return ansi("31", s) }
func dim(s string) string    { return ansi("2", s) }

// FormatSummary renders one pass as a table: TIER | DUE, followed by totals
// for the fetch side.
func FormatSummary(due Due, sum Summary) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tDUE")

	row := func(name string, n int, paint func(string) string) {
		v := fmt.Sprint(n)
		if n > 0 {
			v = paint(v)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, v)
	}
	row("hot", len(due.Hot), red)
	row("mild", len(due.Mild), yellow)
	row("cold", len(due.Cold), green)
	fmt.Fprintf(w, "%s\t%s\n", dim("TOTAL"), dim(fmt.Sprint(sum.Due)))

	failed := fmt.Sprint(sum.Failed)
	if sum.Failed > 0 {
		failed = red(failed)
	}
	fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf(
		"batches=%d failed=%s updated=%d skipped=%d took=%v",
		sum.Batches, failed, sum.Updated, sum.Skipped, sum.Took.Truncate(time.Millisecond),
	)))
	_ = w.Flush()
	return b.String()
}
