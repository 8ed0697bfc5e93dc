package messenger

import (
	"net/url"
	"strings"
)

const (
	DefaultPageID = "CafeHavaJava"
	baseURL       = "https://m.me/"
)

// url.QueryEscape escapes these, JavaScript's encodeURIComponent does not.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a single
// query-string value: UTF-8 bytes, spaces as %20.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// DeepLink builds the Messenger link that pre-fills text for pageID.
func DeepLink(pageID, text string) string {
	if pageID == "" {
		pageID = DefaultPageID
	}
	return baseURL + pageID + "?text=" + EncodeURIComponent(text)
}
