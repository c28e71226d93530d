package profile

import (
	"fmt"
	"strings"

	"investorparser/internal/components/assert"
	"investorparser/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
)

const report_parser_parse = "parser.parse"

// Page is one fetched profile page, both as raw text and as a parsed tree.
type Page struct {
	Text   string
	Doc    *goquery.Document
	Source string
}

// Strategy derives a partial record from a page without looking at any other source.
type Strategy func(page Page) PartialRecord

// Parser extracts investor records from profile pages. It holds no state besides
// its telemetry sink and is safe for concurrent use.
type Parser struct {
	tel telemetry.API
}

func NewParser(tel telemetry.API) Parser {
	assert.NotNil("telemetry", tel)
	return Parser{tel: telemetry.NewScopedAPI("profile_parser", tel)}
}

// Parse runs both extraction strategies over the document and merges them. It only
// fails when the document cannot be read as markup at all, every other problem
// degrades the affected fields to empty.
func (p Parser) Parse(document, source string) (Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		p.tel.ReportBroken(report_parser_parse, fmt.Errorf("read markup: %w", err), source)
		return Record{}, fmt.Errorf("parse %s: %w", source, err)
	}
	page := Page{Text: document, Doc: doc, Source: source}

	record := Combine(page, p.ExtractStructured, p.ExtractHeuristic)

	p.tel.ReportDebug(
		report_parser_parse,
		source,
		string(record.ExtractionMethod),
		record.Investments.Len(),
	)
	return record, nil
}

// Combine runs both strategies over the page, the heuristic one always runs even
// when the structured one finds everything.
func Combine(page Page, structured, heuristic Strategy) Record {
	record := Merge(structured(page), heuristic(page))
	record.SourceFile = page.Source
	return record
}

var defaultParser = NewParser(telemetry.NopAPI{})

// Parse is Parser.Parse without any telemetry.
func Parse(document, source string) (Record, error) {
	return defaultParser.Parse(document, source)
}
