package cache

// Option configures the Store.
type Option func(*options)

type options struct {
	prefix string
}

func defaultOptions() *options {
	return &options{}
}

// WithPrefix sets a key prefix for all store operations.
// Keys are stored as "{prefix}:{key}". This is useful for namespacing
// when several applications share the same shards.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}
