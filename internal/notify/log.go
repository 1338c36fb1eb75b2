package notify

import "github.com/rs/zerolog"

// LogSink writes booking outcomes to the structured log. The default sink
// when no user-facing channel is configured.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger *zerolog.Logger) *LogSink {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "notify").Logger()
	}
	return &LogSink{logger: base}
}

func (s *LogSink) Success(message string) {
	s.logger.Info().Str("outcome", "success").Msg(message)
}

func (s *LogSink) Failure(message string) {
	s.logger.Warn().Str("outcome", "failure").Msg(message)
}
