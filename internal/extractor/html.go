package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageMetadata is what the HTML of a hit contributes on top of its text.
type PageMetadata struct {
	MetaDescription string
	Organization    string
}

// ExtractPageMetadata pulls the meta description and a best-guess
// organization name out of raw HTML. Malformed markup yields zero values.
func ExtractPageMetadata(html string) PageMetadata {
	if html == "" {
		return PageMetadata{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageMetadata{}
	}

	meta := PageMetadata{}
	meta.MetaDescription, _ = doc.Find(`meta[name="description"]`).Attr("content")

	if siteName, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok && siteName != "" {
		meta.Organization = strings.TrimSpace(siteName)
	} else if org := doc.Find(".organization, .org, .company").First().Text(); strings.TrimSpace(org) != "" {
		meta.Organization = strings.TrimSpace(org)
	} else {
		meta.Organization = strings.TrimSpace(doc.Find("h1, h2, h3").First().Text())
	}

	return meta
}

// SourceDomain returns the hostname of a hit's URL, or "" when it does
// not parse.
func SourceDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
