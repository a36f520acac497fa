package convert

import (
	"bytes"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// frontmatter is the metadata block written at the top of each converted
// note. Field order here is the order Obsidian displays.
type frontmatter struct {
	Title   string    `yaml:"title"`
	Tags    []string  `yaml:"tags,omitempty"`
	Folder  string    `yaml:"folder,omitempty"`
	Created time.Time `yaml:"created,omitempty"`
	Updated time.Time `yaml:"updated,omitempty"`
	Starred bool      `yaml:"starred,omitempty"`
}

// RenderMarkdown produces the markdown document for a note: a YAML
// frontmatter block followed by the note body. folderName is the resolved
// display name of the note's folder.
func RenderMarkdown(note *Note, folderName string) ([]byte, error) {
	meta, err := yaml.Marshal(frontmatter{
		Title:   note.Title,
		Tags:    note.Tags,
		Folder:  folderName,
		Created: note.CreatedAt,
		Updated: note.UpdatedAt,
		Starred: note.IsStarred,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling frontmatter")
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	// Boostnote's triple-quoted bodies keep the newlines that hug the
	// delimiters; strip them but leave interior whitespace alone.
	b.WriteString(strings.Trim(note.Content, "\n"))
	b.WriteString("\n")
	return b.Bytes(), nil
}

// FileName derives a markdown file name from a note title, replacing
// characters that are unsafe in file names. Untitled notes fall back to
// the .cson file's own base name.
func FileName(title, fallback string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, title)
	mapped = strings.TrimSpace(mapped)
	mapped = strings.Trim(mapped, ".")
	if mapped == "" {
		mapped = fallback
	}
	return mapped + ".md"
}
