package mongo

import "time"

// ClientOption configures Client.
type ClientOption func(*ClientConfig)

// ClientConfig holds MongoDB configuration.
type ClientConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
	MaxPoolSize    uint64
}

// WithURI sets the connection string.
func WithURI(uri string) ClientOption {
	return func(c *ClientConfig) {
		c.URI = uri
	}
}

// WithDatabase sets database name.
func WithDatabase(database string) ClientOption {
	return func(c *ClientConfig) {
		c.Database = database
	}
}

// WithTimeouts sets connect and per-query timeouts.
func WithTimeouts(connect, query time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.ConnectTimeout = connect
		c.QueryTimeout = query
	}
}

// WithMaxPoolSize caps the connection pool.
func WithMaxPoolSize(size uint64) ClientOption {
	return func(c *ClientConfig) {
		c.MaxPoolSize = size
	}
}
