// Package scrape pulls tokens and values out of fetched HTML pages.
//
// All functions are pure: they parse the given bytes and keep nothing between calls.
package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"gradescope_proxy/internal/apperr"

	"github.com/PuerkitoBio/goquery"
)

// Document parses html into a goquery document.
func Document(html []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindParse, err, "parse html")
	}
	return doc, nil
}

// Attr returns the attribute of the first element matching selector.
// A missing element, a missing attribute or a blank value is TokenNotFound.
func Attr(html []byte, selector, attr string) (string, error) {
	doc, err := Document(html)
	if err != nil {
		return "", apperr.Wrap(apperr.KindTokenNotFound, err, fmt.Sprintf("%s[%s] not found", selector, attr))
	}
	return AttrIn(doc.Selection, selector, attr)
}

// AttrIn is Attr over an already parsed selection.
func AttrIn(sel *goquery.Selection, selector, attr string) (string, error) {
	value, ok := sel.Find(selector).First().Attr(attr)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", apperr.New(apperr.KindTokenNotFound, fmt.Sprintf("%s[%s] not found", selector, attr))
	}
	return value, nil
}

// FormInput returns the value of input[name=inputName] inside form[action=formAction].
func FormInput(html []byte, formAction, inputName string) (string, error) {
	return Attr(html, fmt.Sprintf(`form[action=%q] input[name=%q]`, formAction, inputName), "value")
}

// Input returns the value of the first input[name=inputName] on the page.
func Input(html []byte, inputName string) (string, error) {
	return Attr(html, fmt.Sprintf(`input[name=%q]`, inputName), "value")
}

// Meta returns the content of meta[name=name].
func Meta(html []byte, name string) (string, error) {
	return Attr(html, fmt.Sprintf(`meta[name=%q]`, name), "content")
}

// Text returns the trimmed text of the first element matching selector.
func Text(html []byte, selector string) (string, bool) {
	doc, err := Document(html)
	if err != nil {
		return "", false
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}
