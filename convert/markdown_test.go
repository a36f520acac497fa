package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownOmitsEmptyMetadata(t *testing.T) {
	out, err := RenderMarkdown(&Note{Title: "Bare", Content: "body"}, "")
	require.NoError(t, err)

	require.Equal(t, "---\ntitle: Bare\n---\n\nbody\n", string(out))
}

func TestRenderMarkdownTrimsDelimiterNewlines(t *testing.T) {
	note := &Note{Title: "t", Content: "\nfirst\n\nsecond\n"}
	out, err := RenderMarkdown(note, "")
	require.NoError(t, err)

	require.Contains(t, string(out), "---\n\nfirst\n\nsecond\n")
}
