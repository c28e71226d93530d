package profile

import (
	_ "embed"
	"strings"
	"testing"

	"investorparser/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
)

//go:embed testdata/profile.html
var profileHtml string

//go:embed testdata/profile_markup_only.html
var markupOnlyHtml string

func newPage(t testing.TB, document string) Page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		t.Fatal(err)
	}
	return Page{Text: document, Doc: doc, Source: "test.html"}
}

func newTestParser() (Parser, *telemetry.RecordingAPI) {
	rec := &telemetry.RecordingAPI{}
	return NewParser(rec), rec
}
