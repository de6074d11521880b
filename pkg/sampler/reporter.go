package sampler

// StatsReporter receives counts after each sampling run. It has no influence on the result.
type StatsReporter interface {
	ReportSamplingStats(originalCount, sampledCount, turnCount int)
}

type NopReporter struct{}

func (NopReporter) ReportSamplingStats(originalCount, sampledCount, turnCount int) {}

// MultiReporter fans the stats out to every reporter in order.
type MultiReporter []StatsReporter

func (m MultiReporter) ReportSamplingStats(originalCount, sampledCount, turnCount int) {
	for _, r := range m {
		if r == nil {
			continue
		}
		r.ReportSamplingStats(originalCount, sampledCount, turnCount)
	}
}

// ReporterFunc adapts a plain function to StatsReporter.
type ReporterFunc func(originalCount, sampledCount, turnCount int)

func (f ReporterFunc) ReportSamplingStats(originalCount, sampledCount, turnCount int) {
	f(originalCount, sampledCount, turnCount)
}
