package bundle

import (
	"github.com/viant/stitcher/ast"
	"path"
)

// Migrate moves the element and the paths it refers to under namespace.
//
// The element name, the page id, every root file id and every resolved ref role file id
// are prefixed; anchors are left untouched. Migrate is not idempotent: calling it twice
// prefixes twice.
func (e *Element) Migrate(namespace string) {
	e.Name = path.Join(namespace, e.Name)
	e.namespace = path.Join(namespace, e.namespace)
	doc, ok := e.Document()
	if !ok {
		return
	}
	doc.PageID = path.Join(namespace, doc.PageID)
	ast.ForEach(doc.AST, func(node *ast.Node) {
		switch data := node.Data.(type) {
		case *ast.Root:
			data.FileID = data.FileID.Join(namespace)
		case *ast.RefRole:
			if fileID, htmlID, ok := data.Resolved(); ok {
				data.Resolve(path.Join(namespace, fileID), htmlID)
			}
		}
	})
}
