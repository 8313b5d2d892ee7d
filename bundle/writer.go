package bundle

import (
	"archive/zip"
	"fmt"
	"io"
)

// Writer writes a bundle archive; entries are stored uncompressed
type Writer struct {
	archive *zip.Writer
	entries int
}

// WriteSite writes the site metadata entry
func (w *Writer) WriteSite(site *SiteMetadata) error {
	data, err := site.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode %v: %w", SiteEntry, err)
	}
	return w.WriteEntry(SiteEntry, data)
}

// WriteElement writes the element payload at its full path
func (w *Writer) WriteElement(element *Element) error {
	data, err := element.Data.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode %v: %w", element.FullPath(), err)
	}
	return w.WriteEntry(element.FullPath(), data)
}

// WriteEntry writes raw entry content
func (w *Writer) WriteEntry(name string, data []byte) error {
	writer, err := w.archive.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("failed to create entry %v: %w", name, err)
	}
	if _, err = writer.Write(data); err != nil {
		return fmt.Errorf("failed to write entry %v: %w", name, err)
	}
	w.entries++
	return nil
}

// Entries returns the number of written entries
func (w *Writer) Entries() int {
	return w.entries
}

// Close finalizes the archive; the underlying writer is not closed
func (w *Writer) Close() error {
	return w.archive.Close()
}

// NewWriter creates an archive writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{archive: zip.NewWriter(w)}
}
