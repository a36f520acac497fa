// Package convert turns a directory of legacy Boostnote .cson notes into
// markdown files with YAML frontmatter, placing each note under a
// subdirectory named after its Boostnote folder.
package convert

import "time"

// markdownNote is the only note type Boostnote stored as a single markdown
// body. Snippet notes hold a list of code fragments instead and are skipped.
const markdownNote = "MARKDOWN_NOTE"

// Note is the subset of a Boostnote document this converter cares about.
// Boostnote wrote more fields (linesHighlighted, blog metadata, ...); they
// unmarshal to nothing and are dropped.
type Note struct {
	Type      string    `cson:"type"`
	Title     string    `cson:"title"`
	Content   string    `cson:"content"`
	Folder    string    `cson:"folder"`
	Tags      []string  `cson:"tags"`
	CreatedAt time.Time `cson:"createdAt"`
	UpdatedAt time.Time `cson:"updatedAt"`
	IsStarred bool      `cson:"isStarred"`
	IsTrashed bool      `cson:"isTrashed"`
}

// IsMarkdown reports whether the note carries a markdown body. Very old
// Boostnote versions wrote no type field at all; those are markdown notes.
func (n *Note) IsMarkdown() bool {
	return n.Type == "" || n.Type == markdownNote
}
