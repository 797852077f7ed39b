package fetch

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// leveledZerolog adapts zerolog to retryablehttp.LeveledLogger
type leveledZerolog struct {
	inner zerolog.Logger
}

var _ retryablehttp.LeveledLogger = leveledZerolog{}

// re-writes HTTP client ERROR to WARN level (because of retries)
func (l leveledZerolog) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warn().Fields(keysAndValues).Msg(msg)
}

func (l leveledZerolog) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warn().Fields(keysAndValues).Msg(msg)
}

func (l leveledZerolog) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Info().Fields(keysAndValues).Msg(msg)
}

func (l leveledZerolog) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Debug().Fields(keysAndValues).Msg(msg)
}
