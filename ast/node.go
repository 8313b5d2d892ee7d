package ast

import (
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrUnknownNodeType is returned when a node record carries an unrecognized type discriminator
var ErrUnknownNodeType = errors.New("unknown node type")

// SourceInfo represents a source location
type SourceInfo struct {
	Line int32 `bson:"line"`
}

// Position represents a node position in its source file
type Position struct {
	Start SourceInfo `bson:"start"`
}

// NodeData is implemented by every node variant; the set of variants is closed
type NodeData interface {
	// Type returns the wire discriminator of the variant
	Type() string
	node()
}

// Node represents a document tree element
type Node struct {
	Data     NodeData
	Position Position
}

// NewNode creates a node at the given line
func NewNode(data NodeData, line int32) *Node {
	return &Node{Data: data, Position: Position{Start: SourceInfo{Line: line}}}
}

// Children returns the child nodes owned by the node, in stored order
func (n *Node) Children() []*Node {
	switch data := n.Data.(type) {
	case nil:
		return nil
	case *Code, *InlineTarget, *NamedReference, *RefRole, *Text, *Transition:
		return nil
	case *Comment:
		return data.Children
	case *Label:
		return data.Children
	case *Section:
		return data.Children
	case *Paragraph:
		return data.Children
	case *Footnote:
		return data.Children
	case *FootnoteReference:
		return data.Children
	case *SubstitutionDefinition:
		return data.Children
	case *SubstitutionReference:
		return data.Children
	case *Root:
		return data.Children
	case *Heading:
		return data.Children
	case *DefinitionListItem:
		return data.Children
	case *DefinitionList:
		return data.Children
	case *ListItem:
		return data.Children
	case *List:
		return data.Children
	case *Line:
		return data.Children
	case *LineBlock:
		return data.Children
	case *Directive:
		return data.Children
	case *DirectiveArgument:
		return data.Children
	case *Target:
		return data.Children
	case *TargetIdentifier:
		return data.Children
	case *Reference:
		return data.Children
	case *Role:
		return data.Children
	case *Literal:
		return data.Children
	case *Emphasis:
		return data.Children
	case *Strong:
		return data.Children
	case *Field:
		return data.Children
	case *FieldList:
		return data.Children
	default:
		panic(fmt.Sprintf("ast: unhandled node type %T", n.Data))
	}
}

// MarshalBSON encodes the node as a flat record: type, variant fields, position
func (n *Node) MarshalBSON() ([]byte, error) {
	if n.Data == nil {
		return nil, fmt.Errorf("failed to encode node at line %d: missing data", n.Position.Start.Line)
	}
	body, err := bson.Marshal(n.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s node: %w", n.Data.Type(), err)
	}
	elements, err := bson.Raw(body).Elements()
	if err != nil {
		return nil, err
	}
	record := make(bson.D, 0, len(elements)+2)
	record = append(record, bson.E{Key: "type", Value: n.Data.Type()})
	for _, element := range elements {
		record = append(record, bson.E{Key: element.Key(), Value: element.Value()})
	}
	record = append(record, bson.E{Key: "position", Value: n.Position})
	return bson.Marshal(record)
}

// UnmarshalBSON decodes a flat node record
func (n *Node) UnmarshalBSON(data []byte) error {
	kind, ok := bson.Raw(data).Lookup("type").StringValueOK()
	if !ok {
		return fmt.Errorf("%w: missing type field", ErrUnknownNodeType)
	}
	factory, ok := nodeTypes[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNodeType, kind)
	}
	payload := factory()
	if err := bson.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("failed to decode %s node: %w", kind, err)
	}
	var envelope struct {
		Position Position `bson:"position"`
	}
	if err := bson.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s node position: %w", kind, err)
	}
	n.Data = payload
	n.Position = envelope.Position
	return nil
}

var nodeTypes = map[string]func() NodeData{
	"code":                    func() NodeData { return &Code{} },
	"comment":                 func() NodeData { return &Comment{} },
	"label":                   func() NodeData { return &Label{} },
	"section":                 func() NodeData { return &Section{} },
	"paragraph":               func() NodeData { return &Paragraph{} },
	"footnote":                func() NodeData { return &Footnote{} },
	"footnote_reference":      func() NodeData { return &FootnoteReference{} },
	"substitution_definition": func() NodeData { return &SubstitutionDefinition{} },
	"substitution_reference":  func() NodeData { return &SubstitutionReference{} },
	"root":                    func() NodeData { return &Root{} },
	"heading":                 func() NodeData { return &Heading{} },
	"definitionListItem":      func() NodeData { return &DefinitionListItem{} },
	"definitionList":          func() NodeData { return &DefinitionList{} },
	"listItem":                func() NodeData { return &ListItem{} },
	"list":                    func() NodeData { return &List{} },
	"line":                    func() NodeData { return &Line{} },
	"line_block":              func() NodeData { return &LineBlock{} },
	"directive":               func() NodeData { return &Directive{} },
	"directive_argument":      func() NodeData { return &DirectiveArgument{} },
	"target":                  func() NodeData { return &Target{} },
	"target_identifier":       func() NodeData { return &TargetIdentifier{} },
	"inline_target":           func() NodeData { return &InlineTarget{} },
	"reference":               func() NodeData { return &Reference{} },
	"named_reference":         func() NodeData { return &NamedReference{} },
	"role":                    func() NodeData { return &Role{} },
	"ref_role":                func() NodeData { return &RefRole{} },
	"text":                    func() NodeData { return &Text{} },
	"literal":                 func() NodeData { return &Literal{} },
	"emphasis":                func() NodeData { return &Emphasis{} },
	"strong":                  func() NodeData { return &Strong{} },
	"field":                   func() NodeData { return &Field{} },
	"field_list":              func() NodeData { return &FieldList{} },
	"transition":              func() NodeData { return &Transition{} },
}
