package tracker

import "github.com/rs/zerolog"

// CallEvent records metadata about a single tracker request.
type CallEvent struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about tracker calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zerolog logger at debug level.
type LogObserver struct {
	log zerolog.Logger
}

func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ev := o.log.Debug()
	if !event.Success {
		ev = o.log.Warn().Str("error_code", event.ErrorCode)
	}
	ev.Str("op", event.Op).
		Str("method", event.Method).
		Str("path", event.Path).
		Int("status", event.StatusCode).
		Int64("latency_ms", event.LatencyMs).
		Msg("tracker call")
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
