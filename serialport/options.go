package serialport

// Option configures a Port at Open time.
type Option func(*config)

type config struct {
	logger Logger
}

func newConfig(opts []Option) config {
	c := config{logger: noopLogger{}}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger attaches a logger for port lifecycle events (open and
// close). The default is silent.
func WithLogger(l Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
