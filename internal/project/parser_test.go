package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFencedProject(t *testing.T) {
	raw := "```json\n{\"files\":[{\"filename\":\"index.html\",\"language\":\"html\",\"content\":\"<h1>Hi</h1>\"}]}\n```"

	p := Parse(raw)

	require.Len(t, p.Files, 1)
	assert.Equal(t, "index.html", p.Files[0].Filename)
	assert.Equal(t, "html", p.Files[0].Language)
	assert.Equal(t, "<h1>Hi</h1>", p.Files[0].Content)
}

func TestParseGarbageFallsBack(t *testing.T) {
	raw := "not json at all"

	p := Parse(raw)

	require.Len(t, p.Files, 1)
	assert.Equal(t, "index.html", p.Files[0].Filename)
	assert.Equal(t, "html", p.Files[0].Language)
	// The fallback carries the original input exactly, not a cleaned candidate.
	assert.Equal(t, raw, p.Files[0].Content)
}

func TestParseRecoversRawNewlineInString(t *testing.T) {
	// Invalid strict JSON: literal newline inside a string value.
	raw := "{\"files\":[{\"filename\":\"index.html\",\"language\":\"html\",\"content\":\"line one\nline two\"}]}"

	p := Parse(raw)

	require.Len(t, p.Files, 1)
	assert.Equal(t, "line one\nline two", p.Files[0].Content)
}

func TestParseCommentaryWrappedJSON(t *testing.T) {
	raw := "Sure! Here is the project you asked for:\n{\"files\":[{\"filename\":\"a.html\",\"language\":\"html\",\"content\":\"x\"}]}\nLet me know if you need changes."

	p := Parse(raw)

	require.Len(t, p.Files, 1)
	assert.Equal(t, "a.html", p.Files[0].Filename)
}

func TestParseEmptyFilesArrayFallsBack(t *testing.T) {
	raw := `{"files":[]}`

	p := Parse(raw)

	require.Len(t, p.Files, 1)
	assert.Equal(t, raw, p.Files[0].Content)
}

func TestParseMissingFilesFieldFallsBack(t *testing.T) {
	raw := `{"message":"I could not generate the site"}`

	p := Parse(raw)

	require.Len(t, p.Files, 1)
	assert.Equal(t, raw, p.Files[0].Content)
}

func TestParseFillsMissingLanguageFromFilename(t *testing.T) {
	raw := `{"files":[{"filename":"scripts/app.js","content":"console.log(1)"}]}`

	p := Parse(raw)

	require.Len(t, p.Files, 1)
	assert.Equal(t, "javascript", p.Files[0].Language)
}

func TestParsePassesOptionalFieldsThrough(t *testing.T) {
	raw := `{
		"files":[{"filename":"index.html","language":"html","content":"<p>x</p>"}],
		"images":[{"url":"https://example.com/hero.png","alt":"Hero","description":"Hero image"}],
		"apiEndpoints":[{"method":"GET","path":"/api/items","description":"List items"}]
	}`

	p := Parse(raw)

	require.Len(t, p.Files, 1)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "https://example.com/hero.png", p.Images[0].URL)
	require.Len(t, p.APIEndpoints, 1)
	assert.Equal(t, "/api/items", p.APIEndpoints[0].Path)
}
