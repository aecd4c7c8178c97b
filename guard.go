//go:build !chanscope_off

package chanscope

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zulfikawr/chanscope/internal/export"
	"github.com/zulfikawr/chanscope/internal/logging"
)

// Guard prints a final statistics report over everything instrumented
// during the program's lifetime. Create one near the top of main and
// defer Close; the report covers channels and streams wrapped anywhere
// in the process.
type Guard struct {
	start  time.Time
	format Format
	out    io.Writer
	once   sync.Once
}

// NewGuard creates a report guard. Options select the output format and
// destination; the default is a table on standard output.
func NewGuard(opts ...GuardOption) *Guard {
	ensureInit()
	o := guardOptions{format: FormatTable, out: os.Stdout}
	for _, fn := range opts {
		fn(&o)
	}
	return &Guard{start: time.Now(), format: o.format, out: o.out}
}

// Close renders the report. Only the first call prints; repeated and
// concurrent calls are no-ops, so a deferred Close composes with an
// explicit one on early-exit paths.
func (g *Guard) Close() {
	g.once.Do(g.render)
}

func (g *Guard) render() {
	r := ensureInit()
	doc := export.Combined(r.Snapshot(), r.ElapsedNS())
	var err error
	switch g.format {
	case FormatJSON:
		err = json.NewEncoder(g.out).Encode(doc)
	case FormatJSONPretty:
		enc := json.NewEncoder(g.out)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	default:
		err = renderTable(g.out, doc, time.Since(g.start))
	}
	if err != nil {
		logging.Warn("Failed to render statistics report", zap.Error(err))
	}
}
