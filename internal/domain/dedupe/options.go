package dedupe

type options struct {
	expected int
}

// Option applies a configuration option to the Deduper.
type Option func(*options)

// WithExpectedSize presizes the internal table.
func WithExpectedSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.expected = n
		}
	}
}
