package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

func TestNormalise(t *testing.T) {
	res, err := New().Normalise(
		[]byte("<html><head><title>Sprint notes</title></head><body><p>Ship the importer</p></body></html>"),
		"/notes/sprint.html",
	)
	require.NoError(t, err)

	assert.Equal(t, "Sprint notes", res.Title)
	assert.Equal(t, "Ship the importer", res.Content)
	assert.Equal(t, "html", res.Metadata["format"])
}

func TestNormalise_Empty(t *testing.T) {
	_, err := New().Normalise(nil, "/empty.html")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_Title(t *testing.T) {
	tests := []struct {
		name, content, uri, want string
	}{
		{"title tag", "<title>Retro</title><p>x</p>", "/a.html", "Retro"},
		{"trimmed", "<title>   Retro   </title>", "/a.html", "Retro"},
		{"entities", "<title>R&amp;D review</title>", "/a.html", "R&D review"},
		{"file name fallback", "<p>no title</p>", "/team_sync-notes.html", "team sync notes"},
		{"empty title", "<title></title><p>x</p>", "/readme.html", "readme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New().Normalise([]byte(tt.content), tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Title)
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"paragraph", "<p>Hello</p>", "Hello"},
		{"nested", "<div><p><strong>Bold</strong> text</p></div>", "Bold text"},
		{"script", "<p>Before</p><script>alert(1);</script><p>After</p>", "Before\nAfter"},
		{"style", "<style>.a{color:red}</style><p>Content</p>", "Content"},
		{"head", "<head><title>T</title></head><body>Content</body>", "Content"},
		{"br", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"entities", "<p>&lt;tag&gt; &amp; &quot;q&quot;</p>", "<tag> & \"q\""},
		{"comment", "<p>a</p><!-- hidden --><p>b</p>", "a\nb"},
		{"list", "<ul><li>one</li><li>two</li></ul>", "one\ntwo"},
		{"image", `<p>See <img src="x.png"> here</p>`, "See here"},
		{"svg", `<p>a</p><svg><circle/></svg><p>b</p>`, "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripHTML(tt.input))
		})
	}
}
