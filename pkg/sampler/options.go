package sampler

const (
	// DefaultMinTurnAngle is the bearing change, in degrees, from which a point counts as a turn.
	DefaultMinTurnAngle = 30.0
	// DefaultMaxWaypoints fits a 25 coordinate directions request once origin and destination are added.
	DefaultMaxWaypoints = 23
)

type options struct {
	minTurnAngle float64
	maxWaypoints int
	reporter     StatsReporter
}

type Option func(options) options

func WithMinTurnAngle(degree float64) Option {
	return func(o options) options {
		o.minTurnAngle = degree
		return o
	}
}

func WithMaxWaypoints(n int) Option {
	return func(o options) options {
		o.maxWaypoints = n
		return o
	}
}

// WithStatsReporter sets the collaborator notified after every sampling. nil disables reporting.
func WithStatsReporter(r StatsReporter) Option {
	return func(o options) options {
		if r == nil {
			r = NopReporter{}
		}
		o.reporter = r
		return o
	}
}

func defaultOptions() options {
	return options{
		minTurnAngle: DefaultMinTurnAngle,
		maxWaypoints: DefaultMaxWaypoints,
		reporter:     NopReporter{},
	}
}
