package stitch

import (
	"github.com/viant/stitcher/target"
	"go.uber.org/zap"
)

// DefaultQueueSize is the capacity of the queue between producers and the writer
const DefaultQueueSize = 10

// Option represents a set option
type Option func(s *Set)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Set) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkers sets the number of bundles processed concurrently
func WithWorkers(workers int) Option {
	return func(s *Set) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithQueueSize sets the writer queue capacity
func WithQueueSize(size int) Option {
	return func(s *Set) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDatabase sets the target database populated by Link
func WithDatabase(db *target.Database) Option {
	return func(s *Set) {
		if db != nil {
			s.db = db
		}
	}
}
