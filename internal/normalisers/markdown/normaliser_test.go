package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

func normalise(t *testing.T, uri, content string) *domain.Manuscript {
	t.Helper()
	m, err := New().Normalise(context.Background(), &domain.RawManuscript{
		URI:      uri,
		MIMEType: "text/markdown",
		Content:  []byte(content),
	})
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func TestNormaliser_Metadata(t *testing.T) {
	n := New()
	assert.ElementsMatch(t, []string{"text/markdown", "text/x-markdown"}, n.SupportedMIMETypes())
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise_TitleFromHeading(t *testing.T) {
	m := normalise(t, "/novel/ch01.md", "# The *Flood*\n\nThe rain had not stopped.")

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "/novel/ch01.md", m.URI)
	assert.Equal(t, "The Flood", m.Title)
	assert.Equal(t, "markdown", m.Format)
	assert.Equal(t, "The Flood\n\nThe rain had not stopped.", m.Content)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestNormalise_TitleFromFilename(t *testing.T) {
	m := normalise(t, "/novel/chapter_two-draft.md", "## Not a title\n\nText.")

	assert.Equal(t, "chapter two draft", m.Title)
}

func TestNormalise_StripsMarkup(t *testing.T) {
	source := "Mara read the **letter** twice.\nShe folded it _slowly_.\n\n" +
		"> Come home, it said.\n\n" +
		"- first\n- second\n\n" +
		"See [the map](http://example.com) and ![a photo](photo.jpg).\n\n" +
		"```\nfmt.Println(\"code\")\n```\n\n" +
		"Inline `code` vanishes.\n\n" +
		"<div>raw html</div>\n\n" +
		"---\n\n" +
		"| a | b |\n|---|---|\n| 1 | 2 |\n\n" +
		"The end."

	m := normalise(t, "ch.md", source)

	assert.Contains(t, m.Content, "Mara read the letter twice. She folded it slowly.")
	assert.Contains(t, m.Content, "Come home, it said.")
	assert.Contains(t, m.Content, "first")
	assert.Contains(t, m.Content, "second")
	assert.Contains(t, m.Content, "See the map and .")
	assert.Contains(t, m.Content, "Inline  vanishes.")
	assert.Contains(t, m.Content, "The end.")
	for _, gone := range []string{"**", "_slowly_", "http://example.com", "photo", "Println", "raw html", "---", "|"} {
		assert.NotContains(t, m.Content, gone)
	}
	assert.NotContains(t, m.Content, "\n\n\n")
}

func TestNormalise_EmptyContent(t *testing.T) {
	m := normalise(t, "empty.md", "")

	assert.Empty(t, m.Content)
	assert.Equal(t, "empty", m.Title)
}

func TestNormalise_Nil(t *testing.T) {
	m, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, m)
}
