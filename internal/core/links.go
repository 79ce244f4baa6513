package core

import (
	"html"
	"regexp"
	"strings"
)

// The e-service portal links documents through its nefdd endpoint; only
// anchors pointing there are download candidates.
const downloadLinkMarker = "document.nefdd?nai="

var (
	anchorRe = regexp.MustCompile(`(?is)<a\s+[^>]*href="([^"]+)"[^>]*>(.*?)</a>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
)

// ExtractLinks pulls document download links out of an HTML mail body.
// Link order is preserved: the portal lists the combined bundle first,
// then the individual documents.
func ExtractLinks(body string) []DocumentLink {
	var links []DocumentLink
	for _, m := range anchorRe.FindAllStringSubmatch(body, -1) {
		href := html.UnescapeString(m[1])
		if !strings.Contains(href, downloadLinkMarker) {
			continue
		}
		title := strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(m[2], "")))
		title = strings.TrimSuffix(title, ".pdf")
		title = strings.TrimSuffix(title, ".PDF")
		links = append(links, DocumentLink{Title: title, URL: href})
	}
	return links
}

// DocumentLinks returns the links to process for an item: explicit links
// if the mail source supplied them, otherwise whatever the body yields.
// When the portal includes more than one link the first is the combined
// ZIP bundle and is skipped in favor of the individual documents.
func DocumentLinks(item *InboundItem) []DocumentLink {
	links := item.Links
	if len(links) == 0 {
		links = ExtractLinks(item.Body)
	}
	if len(links) > 1 {
		links = links[1:]
	}
	return links
}
