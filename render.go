//go:build !chanscope_off

package chanscope

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/zulfikawr/chanscope/internal/export"
)

// renderTable prints the human-readable final report. Sections are
// omitted when empty; a run that instrumented nothing says so instead
// of printing bare headers.
func renderTable(w io.Writer, doc export.CombinedDocument, elapsed time.Duration) error {
	if _, err := fmt.Fprintf(w, "\n=== Statistics (runtime: %.2fs) ===\n", elapsed.Seconds()); err != nil {
		return err
	}
	if len(doc.Channels) == 0 && len(doc.Streams) == 0 {
		_, err := fmt.Fprintln(w, "\nNo instrumented channels or streams found.")
		return err
	}
	if len(doc.Channels) > 0 {
		fmt.Fprintln(w, "\nChannels:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Channel\tType\tState\tSent\tReceived\tQueued\tMem")
		for _, c := range doc.Channels {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				c.Label, c.Kind, c.State, c.Sent, c.Received,
				renderCount(c.Queued), renderMem(c.QueuedBytes))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if len(doc.Streams) > 0 {
		fmt.Fprintln(w, "\nStreams:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Stream\tState\tYielded")
		for _, s := range doc.Streams {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Label, s.State, s.Yielded)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func renderCount(n *uint64) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

func renderMem(n *uint64) string {
	if n == nil {
		return "-"
	}
	return formatBytes(*n)
}

// formatBytes formats a byte count with a power-of-1024 unit, for
// example "1.5 KB".
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
