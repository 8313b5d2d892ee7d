package bundle

import (
	"fmt"
	"github.com/viant/stitcher/ast"
	"go.mongodb.org/mongo-driver/bson"
)

// Category represents a top level archive directory
type Category string

const (
	CategoryDocuments   Category = "documents"
	CategoryAssets      Category = "assets"
	CategoryDiagnostics Category = "diagnostics"
)

// ParseCategory returns the category of a top level directory name
func ParseCategory(name string) (Category, bool) {
	switch category := Category(name); category {
	case CategoryDocuments, CategoryAssets, CategoryDiagnostics:
		return category, true
	}
	return "", false
}

// Data represents an element payload: *DocumentData, AssetData or DiagnosticsData
type Data interface {
	Category() Category
	// Encode returns the archive entry content
	Encode() ([]byte, error)
	data()
}

// DocumentData represents a parsed page
type DocumentData struct {
	Document *ast.Document
}

// AssetData represents raw asset bytes; the element name is the content hash
type AssetData []byte

// DiagnosticsData represents the diagnostics of one source file
type DiagnosticsData []Diagnostic

func (d *DocumentData) Category() Category   { return CategoryDocuments }
func (d AssetData) Category() Category       { return CategoryAssets }
func (d DiagnosticsData) Category() Category { return CategoryDiagnostics }

func (d *DocumentData) Encode() ([]byte, error) {
	if d.Document == nil {
		return nil, fmt.Errorf("document was nil")
	}
	return d.Document.Encode()
}

func (d AssetData) Encode() ([]byte, error) {
	return d, nil
}

func (d DiagnosticsData) Encode() ([]byte, error) {
	data, err := bson.Marshal(&Diagnostics{Diagnostics: d})
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagnostics: %w", err)
	}
	return data, nil
}

func (d *DocumentData) data()   {}
func (d AssetData) data()       {}
func (d DiagnosticsData) data() {}

// Element represents one archive entry; Name is relative to its category directory
type Element struct {
	Name      string
	Data      Data
	namespace string
}

// FullPath returns category/name
func (e *Element) FullPath() string {
	return string(e.Data.Category()) + "/" + e.Name
}

// Namespace returns the namespace the element was migrated into
func (e *Element) Namespace() string {
	return e.namespace
}

// Migrated returns true once Migrate was called
func (e *Element) Migrated() bool {
	return e.namespace != ""
}

// Document returns the document payload
func (e *Element) Document() (*ast.Document, bool) {
	if data, ok := e.Data.(*DocumentData); ok && data.Document != nil {
		return data.Document, true
	}
	return nil, false
}

// NewElement creates an element
func NewElement(name string, data Data) *Element {
	return &Element{Name: name, Data: data}
}
