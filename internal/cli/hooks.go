package cli

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapecache/pkg/observability"
)

// flushLogger reports every cache flush at debug level.
type flushLogger struct {
	logger *log.Logger
}

func newFlushLogger(l *log.Logger) observability.FlushHooks {
	return flushLogger{logger: l}
}

func (f flushLogger) OnFlushStart(kind string, unique int) {
	f.logger.Debug("flushing", "kind", kind, "unique", unique)
}

func (f flushLogger) OnFlushComplete(kind string, records int, d time.Duration, err error) {
	if err != nil {
		f.logger.Warn("flush failed", "kind", kind, "records", records, "err", err)
		return
	}
	f.logger.Debug("flush complete", "kind", kind, "records", records, "elapsed", d.Round(time.Microsecond))
}
