package ast

// Visitor receives traversal callbacks.
//
// EnterNode is called before a node's children are visited and ExitNode after.
// The ancestry stack already includes the node's own id when the node is a Root.
// A visitor is used from a single goroutine.
type Visitor interface {
	EnterDocument(doc *Document)
	ExitDocument(doc *Document)
	EnterNode(ancestry *FileIDStack, node *Node)
	ExitNode(ancestry *FileIDStack, node *Node)
}

// BaseVisitor provides no-op hooks to embed
type BaseVisitor struct{}

func (BaseVisitor) EnterDocument(*Document)       {}
func (BaseVisitor) ExitDocument(*Document)        {}
func (BaseVisitor) EnterNode(*FileIDStack, *Node) {}
func (BaseVisitor) ExitNode(*FileIDStack, *Node)  {}

// VisitorFunc adapts a function to a Visitor called on node entry
type VisitorFunc func(ancestry *FileIDStack, node *Node)

func (f VisitorFunc) EnterDocument(*Document)      {}
func (f VisitorFunc) ExitDocument(*Document)       {}
func (f VisitorFunc) ExitNode(*FileIDStack, *Node) {}

func (f VisitorFunc) EnterNode(ancestry *FileIDStack, node *Node) {
	f(ancestry, node)
}

// Walk visits node and its descendants in pre/post order
func Walk(node *Node, visitor Visitor) {
	if node == nil {
		return
	}
	walk(node, &FileIDStack{}, visitor)
}

// WalkDocument visits the document tree between the document hooks
func WalkDocument(doc *Document, visitor Visitor) {
	visitor.EnterDocument(doc)
	Walk(doc.AST, visitor)
	visitor.ExitDocument(doc)
}

// ForEach calls fn for every node, parents before children
func ForEach(node *Node, fn func(node *Node)) {
	Walk(node, VisitorFunc(func(_ *FileIDStack, node *Node) {
		fn(node)
	}))
}

func walk(node *Node, ancestry *FileIDStack, visitor Visitor) {
	root, isRoot := node.Data.(*Root)
	if isRoot {
		ancestry.Push(root.FileID)
	}
	visitor.EnterNode(ancestry, node)
	for _, child := range node.Children() {
		if child == nil {
			continue
		}
		walk(child, ancestry, visitor)
	}
	visitor.ExitNode(ancestry, node)
	if isRoot {
		ancestry.Pop()
	}
}
