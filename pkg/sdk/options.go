package semsearch

import "go.uber.org/zap"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	artifactPath string
	poolSize     int

	keyPrefix string
	topK      int

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithModelArtifact sets the path of the serialized encoder artifact.
// Required: search and recommendation need the model.
func WithModelArtifact(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.artifactPath = path
	})
}

// WithPoolSize caps concurrent encoder forward passes.
// Defaults to 1.
func WithPoolSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.poolSize = size
	})
}

// WithKeyPrefix overrides the storage key prefix.
// Default: "semsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithTopK sets the search result cap. Default: 20.
func WithTopK(topK int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = topK
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
