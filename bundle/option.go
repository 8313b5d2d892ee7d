package bundle

import (
	"github.com/viant/afs"
	"go.uber.org/zap"
)

// Option represents a bundle option
type Option func(b *Bundle)

// WithFS sets the storage service used to read the archive
func WithFS(fs afs.Service) Option {
	return func(b *Bundle) {
		b.fs = fs
	}
}

// WithLogger sets the logger receiving skipped entry warnings
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bundle) {
		if logger != nil {
			b.logger = logger
		}
	}
}
