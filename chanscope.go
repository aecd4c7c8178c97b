//go:build !chanscope_off

package chanscope

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/zulfikawr/chanscope/internal/config"
	"github.com/zulfikawr/chanscope/internal/logging"
	"github.com/zulfikawr/chanscope/internal/registry"
	"github.com/zulfikawr/chanscope/internal/server"
)

var (
	initOnce sync.Once
	reg      *registry.Registry
	srv      *server.Server
)

// ensureInit wires the process-wide registry and snapshot server the
// first time anything is instrumented. Wrapping stays cheap after that:
// every later call is a single sync.Once check.
func ensureInit() *registry.Registry {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			logging.Warn("Invalid configuration, using defaults", zap.Error(err))
		}
		logging.SetLevel(cfg.Verbosity)
		reg = registry.New(clock.New(), cfg.LogLimit)
		if cfg.Disabled {
			logging.Info("Snapshot server disabled by configuration")
			return
		}
		s := server.New(reg, cfg)
		if err := s.Start(); err != nil {
			// Instrumentation keeps counting without the endpoint.
			logging.Warn("Snapshot server unavailable", zap.Error(err))
			return
		}
		srv = s
	})
	return reg
}

// Shutdown stops the snapshot server if one is running. Counters and
// guards keep working; only the HTTP endpoint goes away. It is safe to
// call Shutdown more than once or before any channel has been wrapped.
func Shutdown() error {
	ensureInit()
	if srv == nil {
		return nil
	}
	return srv.Shutdown()
}

// callSite renders the caller's position as "pkg/file.go:line", keeping
// the last two path components so labels stay short but unambiguous.
func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		if j := strings.LastIndexByte(file[:i], '/'); j >= 0 {
			file = file[j+1:]
		}
	}
	return fmt.Sprintf("%s:%d", file, line)
}
