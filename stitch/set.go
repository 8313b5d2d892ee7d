package stitch

import (
	"context"
	"github.com/viant/stitcher/bundle"
	"github.com/viant/stitcher/target"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"runtime"
	"sync"
)

// Set represents the input bundles of one merge run
type Set struct {
	bundles   []*bundle.Bundle
	db        *target.Database
	logger    *zap.Logger
	workers   int
	queueSize int
	mux       sync.Mutex
	report    Report
}

// Bundles returns the input bundles
func (s *Set) Bundles() []*bundle.Bundle {
	return s.bundles
}

// Database returns the target database populated by Link
func (s *Set) Database() *target.Database {
	return s.db
}

// Link runs the target resolution pass over every document, one task per bundle.
// All passes register into the set database.
func (s *Set) Link(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for _, aBundle := range s.bundles {
		group.Go(func() error {
			return s.link(ctx, aBundle)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	s.logger.Info("linked bundles", zap.Int("bundles", len(s.bundles)), zap.Int("keys", s.db.Len()))
	return nil
}

func (s *Set) link(ctx context.Context, aBundle *bundle.Bundle) error {
	logger := s.logger.With(zap.String("bundle", aBundle.URL()))
	pass := target.NewPass(s.db, target.WithLogger(logger))
	for element, err := range aBundle.Documents() {
		if err != nil {
			return err
		}
		if err = ctx.Err(); err != nil {
			return err
		}
		if doc, ok := element.Document(); ok {
			pass.Run(doc)
		}
	}
	stats := pass.Stats()
	logger.Debug("resolved targets",
		zap.Int("documents", stats.Documents),
		zap.Int("targets", stats.Targets),
		zap.Int("skipped", stats.Skipped),
		zap.Int("identifiers", stats.Identifiers))
	return nil
}

// New creates a set
func New(bundles []*bundle.Bundle, options ...Option) *Set {
	ret := &Set{
		bundles:   bundles,
		logger:    zap.NewNop(),
		workers:   max(1, runtime.NumCPU()),
		queueSize: DefaultQueueSize,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.db == nil {
		ret.db = target.NewDatabase()
	}
	return ret
}
