package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `
<html><body>
<p>You have been served the following documents:</p>
<a href="https://eservice.example.com/document.nefdd?nai=ABC123&amp;bundle=1">All Documents.zip</a><br>
<a href="https://eservice.example.com/document.nefdd?nai=DEF456">Uniform Trial Order.pdf</a><br>
<a href="https://eservice.example.com/document.nefdd?nai=GHI789"><b>Case Management Order.pdf</b></a><br>
<a href="https://eservice.example.com/help">Help</a>
</body></html>`

func TestExtractLinks(t *testing.T) {
	links := ExtractLinks(sampleBody)
	require.Len(t, links, 3)

	assert.Equal(t, "https://eservice.example.com/document.nefdd?nai=ABC123&bundle=1", links[0].URL)
	assert.Equal(t, "All Documents.zip", links[0].Title)

	assert.Equal(t, "Uniform Trial Order", links[1].Title)
	assert.Equal(t, "Case Management Order", links[2].Title, "nested tags stripped from title")
}

func TestExtractLinks_NoMatches(t *testing.T) {
	assert.Empty(t, ExtractLinks(`<a href="https://example.com/other">x</a>`))
	assert.Empty(t, ExtractLinks("plain text, no anchors"))
}

func TestDocumentLinks_SkipsBundleWhenMultiple(t *testing.T) {
	item := &InboundItem{Body: sampleBody}

	links := DocumentLinks(item)
	require.Len(t, links, 2)
	assert.Equal(t, "Uniform Trial Order", links[0].Title)
	assert.Equal(t, "Case Management Order", links[1].Title)
}

func TestDocumentLinks_SingleLinkKept(t *testing.T) {
	item := &InboundItem{
		Body: `<a href="https://x/document.nefdd?nai=ONLY1">Order Setting Trial.pdf</a>`,
	}

	links := DocumentLinks(item)
	require.Len(t, links, 1)
	assert.Equal(t, "Order Setting Trial", links[0].Title)
}

func TestDocumentLinks_ExplicitLinksWin(t *testing.T) {
	item := &InboundItem{
		Body:  sampleBody,
		Links: []DocumentLink{{Title: "Only", URL: "https://x/document.nefdd?nai=Z"}},
	}

	links := DocumentLinks(item)
	require.Len(t, links, 1)
	assert.Equal(t, "Only", links[0].Title)
}
