package stitch

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/stitcher/bundle"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"io"
	"os"
	"path"
)

// Splice merges every bundle element into one archive written to w, under site metadata.
// Elements are migrated into their bundle namespace; assets are written once per content hash.
// The archive is finalized only when every bundle was read successfully.
func (s *Set) Splice(ctx context.Context, site *bundle.SiteMetadata, w io.Writer) error {
	if err := site.Validate(); err != nil {
		return fmt.Errorf("invalid output site: %w", err)
	}
	sink := &sink{writer: bundle.NewWriter(w), assets: newAssetSet(), logger: s.logger}
	if err := sink.writer.WriteSite(site); err != nil {
		return err
	}
	queue := make(chan *bundle.Element, s.queueSize)
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return sink.consume(ctx, queue)
	})
	group.Go(func() error {
		producers, ctx := errgroup.WithContext(ctx)
		producers.SetLimit(s.workers)
		for _, aBundle := range s.bundles {
			producers.Go(func() error {
				return s.produce(ctx, aBundle, queue)
			})
		}
		if err := producers.Wait(); err != nil {
			return err
		}
		close(queue)
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}
	s.mux.Lock()
	s.report = sink.report
	s.mux.Unlock()
	s.logger.Info("spliced bundles",
		zap.String("site", site.Namespace()),
		zap.Int("bundles", len(s.bundles)),
		zap.Int("documents", sink.report.Documents),
		zap.Int("diagnostics", sink.report.Diagnostics),
		zap.Int("assets", sink.report.Assets),
		zap.Int("duplicateAssets", sink.report.DuplicateAssets))
	return nil
}

// SpliceToURL splices into URL; a partially written output is removed on failure
func (s *Set) SpliceToURL(ctx context.Context, fs afs.Service, site *bundle.SiteMetadata, URL string) (err error) {
	writer, err := fs.NewWriter(ctx, URL, os.FileMode(0644))
	if err != nil {
		return fmt.Errorf("failed to create %v: %w", URL, err)
	}
	defer func() {
		if err == nil {
			return
		}
		if dErr := fs.Delete(context.Background(), URL); dErr != nil {
			s.logger.Warn("failed to remove partial output", zap.String("url", URL), zap.Error(dErr))
		}
	}()
	if err = s.Splice(ctx, site, writer); err != nil {
		_ = writer.Close()
		return err
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close %v: %w", URL, err)
	}
	return nil
}

// LastReport returns counters of the last successful splice
func (s *Set) LastReport() Report {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.report
}

func (s *Set) produce(ctx context.Context, aBundle *bundle.Bundle, queue chan<- *bundle.Element) error {
	namespace := aBundle.Namespace()
	for element, err := range aBundle.Elements() {
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			return err
		}
		if element.Migrated() {
			return fmt.Errorf("element %v was already migrated into %v", element.FullPath(), element.Namespace())
		}
		element.Migrate(namespace)
		select {
		case queue <- element:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// sink is the only archive writer of a splice
type sink struct {
	writer *bundle.Writer
	assets *assetSet
	logger *zap.Logger
	report Report
}

func (s *sink) consume(ctx context.Context, queue <-chan *bundle.Element) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case element, ok := <-queue:
			if !ok {
				return s.writer.Close()
			}
			if err := s.write(element); err != nil {
				return err
			}
		}
	}
}

func (s *sink) write(element *bundle.Element) error {
	switch data := element.Data.(type) {
	case bundle.AssetData:
		return s.writeAsset(path.Base(element.Name), data)
	case *bundle.DocumentData:
		s.report.Documents++
	case bundle.DiagnosticsData:
		s.report.Diagnostics++
	}
	return s.writer.WriteElement(element)
}

func (s *sink) writeAsset(hash string, data bundle.AssetData) error {
	added, conflict := s.assets.add(hash, data.Fingerprint())
	if !added {
		s.report.DuplicateAssets++
		if conflict {
			s.report.ConflictingAssets++
			s.logger.Warn("asset content differs from the one already written", zap.String("asset", hash))
		}
		return nil
	}
	s.report.Assets++
	return s.writer.WriteEntry(string(bundle.CategoryAssets)+"/"+hash, data)
}
