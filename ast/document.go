package ast

import (
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
)

// StaticAssetReference represents an asset used by a page
type StaticAssetReference struct {
	Checksum string `bson:"checksum"`
	Key      string `bson:"key"`
}

// Facet represents a page classification facet
type Facet struct {
	Category    string  `bson:"category"`
	Value       string  `bson:"value"`
	SubFacets   []Facet `bson:"sub_facets"`
	DisplayName string  `bson:"display_name"`
}

// Document represents one parsed source file
type Document struct {
	PageID       string                 `bson:"page_id"`
	Filename     FileID                 `bson:"filename"`
	AST          *Node                  `bson:"ast"`
	Source       string                 `bson:"source"`
	StaticAssets []StaticAssetReference `bson:"static_assets"`
	Facets       []Facet                `bson:"facets,omitempty"`
}

// DecodeDocument decodes a document record
func DecodeDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := bson.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// Encode encodes the document record
func (d *Document) Encode() ([]byte, error) {
	data, err := bson.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document %v: %w", d.PageID, err)
	}
	return data, nil
}
