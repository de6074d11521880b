package logger

import "go.uber.org/zap"

// StatsReporter logs every sampling run at debug level.
type StatsReporter struct {
	log *zap.Logger
}

func NewStatsReporter(log *zap.Logger) *StatsReporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsReporter{log: log}
}

func (r *StatsReporter) ReportSamplingStats(originalCount, sampledCount, turnCount int) {
	r.log.Debug("waypoints sampled",
		zap.Int("original", originalCount),
		zap.Int("sampled", sampledCount),
		zap.Int("turns", turnCount),
	)
}
