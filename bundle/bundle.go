package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/stitcher/ast"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"io"
	"iter"
	"os"
	"path"
	"strings"
)

// Bundle represents a read only input archive; entries are read on demand
type Bundle struct {
	url      string
	metadata *SiteMetadata
	reader   *zip.Reader
	file     *os.File
	temp     bool // file is a local copy of a remote archive
	fs       afs.Service
	logger   *zap.Logger
}

// URL returns the archive location
func (b *Bundle) URL() string {
	return b.url
}

// Metadata returns the bundle site metadata
func (b *Bundle) Metadata() *SiteMetadata {
	return b.metadata
}

// Namespace returns the bundle namespace
func (b *Bundle) Namespace() string {
	return b.metadata.Namespace()
}

// Close releases the archive file, removing a local copy of a remote archive
func (b *Bundle) Close() error {
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	if b.temp {
		if rErr := os.Remove(b.file.Name()); err == nil {
			err = rErr
		}
	}
	b.file = nil
	return err
}

// Elements returns all documents, assets and diagnostics in archive order.
// Entries with unsafe paths or outside known categories are skipped with a warning;
// a record that cannot be read or decoded is yielded as an error.
func (b *Bundle) Elements() iter.Seq2[*Element, error] {
	return b.elements(nil)
}

// Documents returns document elements only; other entries are not read
func (b *Bundle) Documents() iter.Seq2[*Element, error] {
	return b.elements(func(category Category) bool {
		return category == CategoryDocuments
	})
}

func (b *Bundle) elements(accept func(category Category) bool) iter.Seq2[*Element, error] {
	return func(yield func(*Element, error) bool) {
		for _, file := range b.reader.File {
			name, ok := enclosedName(file.Name)
			if !ok {
				b.logger.Warn("bundle entry has a prohibited path", zap.String("bundle", b.url), zap.String("entry", file.Name))
				continue
			}
			if file.FileInfo().IsDir() || name == SiteEntry {
				continue
			}
			prefix, rest, _ := strings.Cut(name, "/")
			category, ok := ParseCategory(prefix)
			if !ok || rest == "" {
				b.logger.Warn("unexpected bundle entry", zap.String("bundle", b.url), zap.String("entry", name))
				continue
			}
			if accept != nil && !accept(category) {
				continue
			}
			element, err := b.read(file, category, rest)
			if !yield(element, err) {
				return
			}
		}
	}
}

func (b *Bundle) read(file *zip.File, category Category, name string) (*Element, error) {
	data, err := readFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v entry %v: %w", b.url, file.Name, err)
	}
	switch category {
	case CategoryDocuments:
		doc, err := ast.DecodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %v entry %v: %w", b.url, file.Name, err)
		}
		return NewElement(name, &DocumentData{Document: doc}), nil
	case CategoryDiagnostics:
		record := &Diagnostics{}
		if err = bson.Unmarshal(data, record); err != nil {
			return nil, fmt.Errorf("failed to decode %v entry %v: %w", b.url, file.Name, err)
		}
		return NewElement(name, DiagnosticsData(record.Diagnostics)), nil
	default:
		return NewElement(name, AssetData(data)), nil
	}
}

func (b *Bundle) readSite() (*SiteMetadata, error) {
	for _, file := range b.reader.File {
		if file.Name != SiteEntry {
			continue
		}
		data, err := readFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", SiteEntry, err)
		}
		return DecodeSiteMetadata(data)
	}
	return nil, ErrMissingSite
}

func readFile(file *zip.File) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// enclosedName returns the cleaned entry name, or false when the name could escape the archive root
func enclosedName(name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, "\x00\\") || strings.HasPrefix(name, "/") || hasDrive(name) {
		return "", false
	}
	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

func hasDrive(name string) bool {
	return len(name) >= 2 && name[1] == ':'
}

func (b *Bundle) load(reader io.ReaderAt, size int64) (err error) {
	// insecure entry names are skipped during iteration instead
	if b.reader, err = zip.NewReader(reader, size); err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("failed to open bundle %v: %w", b.url, err)
	}
	if b.metadata, err = b.readSite(); err != nil {
		return fmt.Errorf("failed to open bundle %v: %w", b.url, err)
	}
	return nil
}

func newBundle(URL string, options []Option) *Bundle {
	ret := &Bundle{url: URL, logger: zap.NewNop()}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Load creates a bundle from archive content
func Load(URL string, data []byte, options ...Option) (*Bundle, error) {
	ret := newBundle(URL, options)
	if err := ret.load(bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, err
	}
	return ret, nil
}

// Open opens the archive at URL and reads its site metadata.
// Local archives are read in place; other URLs are first copied to a temporary file.
// The returned bundle has to be closed.
func Open(ctx context.Context, URL string, options ...Option) (*Bundle, error) {
	ret := newBundle(URL, options)
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	err := ret.open(ctx)
	if err == nil {
		var info os.FileInfo
		if info, err = ret.file.Stat(); err == nil {
			err = ret.load(ret.file, info.Size())
		}
	}
	if err != nil {
		_ = ret.Close()
		return nil, err
	}
	return ret, nil
}

func (b *Bundle) open(ctx context.Context) (err error) {
	if !strings.Contains(b.url, "://") {
		b.file, err = os.Open(b.url)
	} else if url.Scheme(b.url, file.Scheme) == file.Scheme {
		b.file, err = os.Open(url.Path(b.url))
	} else {
		err = b.download(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to read bundle %v: %w", b.url, err)
	}
	return nil
}

// download streams a remote archive into a temporary file
func (b *Bundle) download(ctx context.Context) error {
	reader, err := b.fs.OpenURL(ctx, b.url)
	if err != nil {
		return err
	}
	defer reader.Close()
	if b.file, err = os.CreateTemp("", "bundle-*.zip"); err != nil {
		return err
	}
	b.temp = true
	_, err = io.Copy(b.file, reader)
	return err
}
