package blog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"5 Morning Stretches!", "5-morning-stretches"},
		{"  Protein 101: The Basics  ", "protein-101-the-basics"},
		{"---", "post"},
		{"Déjà Vu Workout", "dj-vu-workout"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MakeSlug(tc.title), "title %q", tc.title)
	}
}

func TestRenderHTMLLinkifiesBareURLs(t *testing.T) {
	out, err := RenderHTML("Read more at https://example.com/guide")
	assert.NoError(t, err)
	assert.Contains(t, out, `<a href="https://example.com/guide"`)
}

func TestRenderHTMLStripsScriptTags(t *testing.T) {
	out, err := RenderHTML("hello <script>alert(1)</script> world")
	assert.NoError(t, err)
	assert.False(t, strings.Contains(out, "<script>"))
}
