package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"investorparser/internal/components/assert"
	"investorparser/internal/components/telemetry"
	"investorparser/internal/profile"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	report_batch_run      = "batch.run"
	report_batch_document = "batch.document"
)

var tracer trace.Tracer = otel.Tracer("investorparser/internal/batch")

// Failure is a document that could not be turned into a record.
type Failure struct {
	File string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.File, f.Err)
}

type Result struct {
	// Records are in the order of the input files, failed files are left out.
	Records  []profile.Record
	Failures []Failure
}

type Runner struct {
	parser  profile.Parser
	workers int
	tel     telemetry.API
}

// NewRunner creates a runner parsing at most `workers` documents at a time.
func NewRunner(parser profile.Parser, workers int, tel telemetry.API) Runner {
	assert.NotNil("telemetry", tel)
	if workers <= 0 {
		workers = 4
	}
	return Runner{
		parser:  parser,
		workers: workers,
		tel:     telemetry.NewScopedAPI("batch_runner", tel),
	}
}

// ListDocuments returns the paths of every .html file directly under dir, sorted.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// RunDir parses every document of the directory.
func (r Runner) RunDir(ctx context.Context, dir string) (Result, error) {
	paths, err := ListDocuments(dir)
	if err != nil {
		r.tel.ReportBroken(report_batch_run, err, dir)
		return Result{}, fmt.Errorf("list %s: %w", dir, err)
	}
	return r.Run(ctx, paths)
}

type outcome struct {
	record profile.Record
	err    error
}

// Run parses the documents concurrently. A failing document never affects the
// others, the returned error is only set when the context ends the run early.
func (r Runner) Run(ctx context.Context, paths []string) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.Int("documents", len(paths)),
	))
	defer span.End()

	outcomes := make([]outcome, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i, path := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.document(groupCtx, path)
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	var result Result
	for i, o := range outcomes {
		if o.err != nil {
			result.Failures = append(result.Failures, Failure{File: paths[i], Err: o.err})
			continue
		}
		result.Records = append(result.Records, o.record)
	}

	r.tel.ReportCount(report_batch_run, int64(len(result.Records)))
	if len(result.Failures) > 0 {
		r.tel.ReportWarning(report_batch_run, fmt.Errorf("%d of %d documents failed", len(result.Failures), len(paths)))
	}
	return result, nil
}

func (r Runner) document(ctx context.Context, path string) outcome {
	_, span := tracer.Start(ctx, "document", trace.WithAttributes(
		attribute.String("path", path),
	))
	defer span.End()

	contents, err := os.ReadFile(path)
	if err != nil {
		r.tel.ReportWarning(report_batch_document, err, path)
		span.SetStatus(codes.Error, err.Error())
		return outcome{err: err}
	}

	record, err := r.parser.Parse(string(contents), filepath.Base(path))
	if err != nil {
		r.tel.ReportWarning(report_batch_document, err, path)
		span.SetStatus(codes.Error, err.Error())
		return outcome{err: err}
	}

	span.SetAttributes(
		attribute.String("extraction_method", string(record.ExtractionMethod)),
		attribute.Int("investments", record.Investments.Len()),
	)
	return outcome{record: record}
}

// EncodeRecords renders the records as an indented JSON array.
func EncodeRecords(records []profile.Record) ([]byte, error) {
	if records == nil {
		records = []profile.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(records)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteRecords(path string, records []profile.Record) error {
	out, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, out, 0644)
}

// ReadRecords reads a file written by WriteRecords.
func ReadRecords(path string) ([]profile.Record, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []profile.Record
	err = json.Unmarshal(contents, &records)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
