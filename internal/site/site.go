package site

import "strings"

// Adapter isolates every structural assumption about a target site's
// markup. The fetcher and extractor only ever see selectors through
// this interface, so a markup change on the site is a one-file fix.
type Adapter interface {
	// BaseURL is the page Open navigates to before searching.
	BaseURL() string
	// SearchInputSelector locates the keyword input on the home page.
	SearchInputSelector() string
	// ListingSelector matches one product container on a results page.
	ListingSelector() string
	// TitleSelector, PriceSelector, LinkSelector and ImageSelector are
	// scoped to a single listing container.
	TitleSelector() string
	PriceSelector() string
	LinkSelector() string
	ImageSelector() string
	// NextControlSelector locates the next-page control.
	NextControlSelector() string
	// NextControlDisabled interprets the control's aria-disabled value.
	NextControlDisabled(ariaDisabled string) bool
	// NormalizeURL turns an extracted href into an absolute URL.
	NormalizeURL(href string) string
}

// Daraz adapts daraz.pk search result markup.
// The class names are generated and change occasionally; update them here.
type Daraz struct{}

func NewDaraz() Daraz {
	return Daraz{}
}

func (Daraz) BaseURL() string {
	return "https://www.daraz.pk/"
}

func (Daraz) SearchInputSelector() string {
	return "#q"
}

func (Daraz) ListingSelector() string {
	return ".Bm3ON"
}

func (Daraz) TitleSelector() string {
	return ".RfADt"
}

func (Daraz) PriceSelector() string {
	return ".ooOxS"
}

func (Daraz) LinkSelector() string {
	return "a[href]"
}

func (Daraz) ImageSelector() string {
	return "img[src]"
}

func (Daraz) NextControlSelector() string {
	return `li.ant-pagination-next[title="Next Page"]`
}

func (Daraz) NextControlDisabled(ariaDisabled string) bool {
	return !strings.EqualFold(ariaDisabled, "false")
}

func (d Daraz) NormalizeURL(href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimSuffix(d.BaseURL(), "/") + href
	default:
		return href
	}
}
