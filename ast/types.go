package ast

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ListEnumType represents list numbering style
type ListEnumType string

const (
	ListUnordered  ListEnumType = "unordered"
	ListArabic     ListEnumType = "arabic"
	ListLowerAlpha ListEnumType = "loweralpha"
	ListUpperAlpha ListEnumType = "upperalpha"
	ListLowerRoman ListEnumType = "lowerroman"
	ListUpperRoman ListEnumType = "upperroman"
)

// Code represents a literal code block
type Code struct {
	Lang           *string   `bson:"lang"`
	Caption        *string   `bson:"caption,omitempty"`
	Copyable       bool      `bson:"copyable"`
	EmphasizeLines [][]int32 `bson:"emphasize_lines"` // pairs of first, last line
	Value          string    `bson:"value"`
	Linenos        bool      `bson:"linenos"`
	LinenoStart    *int32    `bson:"lineno_start,omitempty"`
	Source         *string   `bson:"source,omitempty"`
}

type Comment struct {
	Children []*Node `bson:"children"`
}

type Label struct {
	Children []*Node `bson:"children"`
}

type Section struct {
	Children []*Node `bson:"children"`
}

type Paragraph struct {
	Children []*Node `bson:"children"`
}

type Footnote struct {
	Children []*Node `bson:"children"`
	ID       string  `bson:"id"`
	Name     *string `bson:"name"`
}

type FootnoteReference struct {
	Children []*Node `bson:"children"` // inline nodes
	ID       string  `bson:"id"`
	Refname  *string `bson:"refname"`
}

type SubstitutionDefinition struct {
	Children []*Node `bson:"children"` // inline nodes
	Name     string  `bson:"name"`
}

type SubstitutionReference struct {
	Children []*Node `bson:"children"` // inline nodes
	Name     string  `bson:"name"`
}

// Root represents the top of a source file; roots may be embedded in another file's tree
type Root struct {
	Children []*Node  `bson:"children"`
	FileID   FileID   `bson:"fileid"`
	Options  bson.Raw `bson:"options,omitempty"`
}

type Heading struct {
	Children []*Node `bson:"children"` // inline nodes
	ID       string  `bson:"id"`
}

type DefinitionListItem struct {
	Children []*Node `bson:"children"`
	Term     []*Node `bson:"term"` // inline nodes
}

type DefinitionList struct {
	Children []*Node `bson:"children"` // definition list items
}

type ListItem struct {
	Children []*Node `bson:"children"`
}

type List struct {
	Children []*Node      `bson:"children"` // list items
	EnumType ListEnumType `bson:"enumtype"`
	StartAt  *int32       `bson:"startat,omitempty"`
}

type Line struct {
	Children []*Node `bson:"children"` // inline nodes
}

type LineBlock struct {
	Children []*Node `bson:"children"` // lines
}

// Directive represents a generic directive; options are kept opaque
type Directive struct {
	Children []*Node  `bson:"children"`
	Domain   string   `bson:"domain"`
	Name     string   `bson:"name"`
	Argument []*Node  `bson:"argument"` // inline nodes
	Options  bson.Raw `bson:"options,omitempty"`
}

type DirectiveArgument struct {
	Children []*Node `bson:"children"` // inline nodes
}

// Target represents a definable anchor, e.g. std:label
type Target struct {
	Children []*Node  `bson:"children"`
	Domain   string   `bson:"domain"`
	Name     string   `bson:"name"`
	HTMLID   *string  `bson:"html_id"` // nil until resolved
	Options  bson.Raw `bson:"options,omitempty"`
}

// Role returns domain:name
func (t *Target) Role() string {
	return t.Domain + ":" + t.Name
}

// Identifiers returns the target identifier children, in stored order
func (t *Target) Identifiers() []*TargetIdentifier {
	var result []*TargetIdentifier
	for _, child := range t.Children {
		if child == nil {
			continue
		}
		if identifier, ok := child.Data.(*TargetIdentifier); ok {
			result = append(result, identifier)
		}
	}
	return result
}

// TargetIdentifier represents one name of a target together with its optional title
type TargetIdentifier struct {
	Children []*Node  `bson:"children"` // title, inline nodes
	IDs      []string `bson:"ids"`
}

type InlineTarget struct {
	Target `bson:",inline"`
}

type Reference struct {
	Children []*Node `bson:"children"` // inline nodes
	Refuri   string  `bson:"refuri"`
	Refname  string  `bson:"refname,omitempty"`
}

type NamedReference struct {
	Refname string `bson:"refname"`
	Refuri  string `bson:"refuri"`
}

type Role struct {
	Children []*Node `bson:"children"` // inline nodes
	Domain   string  `bson:"domain"`
	Name     string  `bson:"name"`
	Target   string  `bson:"target"`
	Flag     string  `bson:"flag"`
}

// RefRole represents a cross reference; FileID holds the resolved (fileid, html id) pair
type RefRole struct {
	Role   `bson:",inline"`
	FileID *[2]string `bson:"fileid,omitempty"`
	URL    *string    `bson:"url,omitempty"`
}

// Resolved returns the resolved file id and anchor
func (r *RefRole) Resolved() (fileID string, htmlID string, ok bool) {
	if r.FileID == nil {
		return "", "", false
	}
	return r.FileID[0], r.FileID[1], true
}

// Resolve sets the resolved file id and anchor
func (r *RefRole) Resolve(fileID, htmlID string) {
	r.FileID = &[2]string{fileID, htmlID}
}

type Text struct {
	Value string `bson:"value"`
}

type Literal struct {
	Children []*Node `bson:"children"` // inline nodes
}

type Emphasis struct {
	Children []*Node `bson:"children"` // inline nodes
}

type Strong struct {
	Children []*Node `bson:"children"` // inline nodes
}

type Field struct {
	Children []*Node `bson:"children"`
	Name     string  `bson:"name"`
	Label    *string `bson:"label"`
}

type FieldList struct {
	Children []*Node `bson:"children"` // fields
}

type Transition struct{}

func (*Code) Type() string                   { return "code" }
func (*Comment) Type() string                { return "comment" }
func (*Label) Type() string                  { return "label" }
func (*Section) Type() string                { return "section" }
func (*Paragraph) Type() string              { return "paragraph" }
func (*Footnote) Type() string               { return "footnote" }
func (*FootnoteReference) Type() string      { return "footnote_reference" }
func (*SubstitutionDefinition) Type() string { return "substitution_definition" }
func (*SubstitutionReference) Type() string  { return "substitution_reference" }
func (*Root) Type() string                   { return "root" }
func (*Heading) Type() string                { return "heading" }
func (*DefinitionListItem) Type() string     { return "definitionListItem" }
func (*DefinitionList) Type() string         { return "definitionList" }
func (*ListItem) Type() string               { return "listItem" }
func (*List) Type() string                   { return "list" }
func (*Line) Type() string                   { return "line" }
func (*LineBlock) Type() string              { return "line_block" }
func (*Directive) Type() string              { return "directive" }
func (*DirectiveArgument) Type() string      { return "directive_argument" }
func (*Target) Type() string                 { return "target" }
func (*TargetIdentifier) Type() string       { return "target_identifier" }
func (*InlineTarget) Type() string           { return "inline_target" }
func (*Reference) Type() string              { return "reference" }
func (*NamedReference) Type() string         { return "named_reference" }
func (*Role) Type() string                   { return "role" }
func (*RefRole) Type() string                { return "ref_role" }
func (*Text) Type() string                   { return "text" }
func (*Literal) Type() string                { return "literal" }
func (*Emphasis) Type() string               { return "emphasis" }
func (*Strong) Type() string                 { return "strong" }
func (*Field) Type() string                  { return "field" }
func (*FieldList) Type() string              { return "field_list" }
func (*Transition) Type() string             { return "transition" }

func (*Code) node()                   {}
func (*Comment) node()                {}
func (*Label) node()                  {}
func (*Section) node()                {}
func (*Paragraph) node()              {}
func (*Footnote) node()               {}
func (*FootnoteReference) node()      {}
func (*SubstitutionDefinition) node() {}
func (*SubstitutionReference) node()  {}
func (*Root) node()                   {}
func (*Heading) node()                {}
func (*DefinitionListItem) node()     {}
func (*DefinitionList) node()         {}
func (*ListItem) node()               {}
func (*List) node()                   {}
func (*Line) node()                   {}
func (*LineBlock) node()              {}
func (*Directive) node()              {}
func (*DirectiveArgument) node()      {}
func (*Target) node()                 {}
func (*TargetIdentifier) node()       {}
func (*InlineTarget) node()           {}
func (*Reference) node()              {}
func (*NamedReference) node()         {}
func (*Role) node()                   {}
func (*RefRole) node()                {}
func (*Text) node()                   {}
func (*Literal) node()                {}
func (*Emphasis) node()               {}
func (*Strong) node()                 {}
func (*Field) node()                  {}
func (*FieldList) node()              {}
func (*Transition) node()             {}
