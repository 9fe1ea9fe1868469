/*
Package ast defines the tree representation of an ASS dialogue line.

A Line is a sequence of chunks: plain text, comments and tag lists. A tag list
corresponds to one block in curly braces and holds the tags of that block in
application order. Tags are small value types, one for each override tag of the
ASS format. One tag, Animation, holds a nested sequence of tags itself.

Trees are produced by package parser and consumed by package compose. They are
plain data: a Line exclusively owns its chunks, and nothing in this module
mutates a tree after construction.

Numbering and units are canonical in the tree, independent of the spelling used
in the source text: alignments always use the 1…9 numpad scheme, karaoke
durations are stored in hundredths of a second and colors are stored in RGB order.
*/
package ast

// Node is implemented by every element of a line's tree.
type Node interface {
	// Kind returns a stable name for the type of node, e.g. "plain-text" or
	// "color-primary".
	Kind() string
}

// Chunk is a top-level element of a Line.
// Implementations are *PlainText, *Comment and *TagList.
type Chunk interface {
	Node
	isChunk()
}

// Tag is an override tag inside a tag list or an animation.
type Tag interface {
	Node
	isTag()
}

// Line is a dialogue line. The order of chunks is rendering order.
type Line struct {
	Chunks []Chunk
}

// PlainText is literal text outside of any brace block.
type PlainText struct {
	Text string
}

// Comment is the content of a brace block which does not consist of
// recognized tags. Text excludes the braces.
type Comment struct {
	Text string
}

// TagList is a brace block of zero or more tags.
type TagList struct {
	Tags []Tag
}

func (*PlainText) Kind() string { return "plain-text" }
func (*Comment) Kind() string   { return "comment" }
func (*TagList) Kind() string   { return "tag-list" }

func (*PlainText) isChunk() {}
func (*Comment) isChunk()   {}
func (*TagList) isChunk()   {}

// NewLine creates a line from a sequence of chunks.
func NewLine(chunks ...Chunk) *Line {
	if chunks == nil {
		chunks = []Chunk{}
	}
	return &Line{Chunks: chunks}
}

// NewTagList creates a tag list from a sequence of tags.
func NewTagList(tags ...Tag) *TagList {
	if tags == nil {
		tags = []Tag{}
	}
	return &TagList{Tags: tags}
}
