package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"investorparser/internal/components/assert"
	"investorparser/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_fetcher_save  = "fetcher.save"
	report_fetcher_fetch = "fetcher.fetch"
	report_fetcher_skip  = "fetcher.skip"
)

type Options struct {
	// Dir is where pages are saved, one file per url.
	Dir string
	// RequestsPerSecond bounds the request rate, 0 means 2 per second.
	RequestsPerSecond float64
	Timeout           time.Duration
	UserAgent         string
}

type Fetcher struct {
	http *resty.Client
	dir  string
	tel  telemetry.API
}

func NewFetcher(opts Options, tel telemetry.API) Fetcher {
	assert.NotNil("telemetry", tel)
	assert.NotEmpty("pages dir", opts.Dir)
	tel = telemetry.NewScopedAPI("page_fetcher", tel)

	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}

	client := resty.New()
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	// a burst of at least 1 means no request is ever dropped, only delayed
	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, tel)

	return Fetcher{http: client, dir: opts.Dir, tel: tel}
}

// Slug is the file stem a url is saved under: its last non-empty path segment.
func Slug(rawUrl string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawUrl))
	if err != nil {
		return "", err
	}
	segments := strings.Split(parsed.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" && segments[i] != "." && segments[i] != ".." {
			return segments[i], nil
		}
	}
	return "", fmt.Errorf("no path segment in %q", rawUrl)
}

func (f Fetcher) Path(slug string) string {
	return filepath.Join(f.dir, slug+".html")
}

type Result struct {
	Saved   []string
	Skipped []string
}

// FetchAll downloads every url whose page is not saved yet. A failed url does not
// stop the others, all failures are returned joined.
func (f Fetcher) FetchAll(ctx context.Context, urls []string) (Result, error) {
	err := os.MkdirAll(f.dir, 0755)
	if err != nil {
		return Result{}, err
	}

	var result Result
	var errs []error
	for _, u := range urls {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		slug, err := Slug(u)
		if err != nil {
			f.tel.ReportWarning(report_fetcher_fetch, err)
			errs = append(errs, err)
			continue
		}
		path := f.Path(slug)
		if _, err := os.Stat(path); err == nil {
			f.tel.ReportDebug(report_fetcher_skip, u, path)
			result.Skipped = append(result.Skipped, path)
			continue
		}

		err = f.fetch(ctx, u, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result.Saved = append(result.Saved, path)
	}

	f.tel.ReportCount(report_fetcher_save, int64(len(result.Saved)))
	return result, errors.Join(errs...)
}

func (f Fetcher) fetch(ctx context.Context, u, path string) error {
	res, err := f.http.R().
		SetContext(ctx).
		Get(u)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", u, err)
	}
	if res.IsError() {
		err = fmt.Errorf("fetch %s: unexpected status %s", u, res.Status())
		f.tel.ReportWarning(report_fetcher_fetch, err)
		return err
	}

	err = os.WriteFile(path, res.Body(), 0644)
	if err != nil {
		f.tel.ReportBroken(report_fetcher_save, err, path)
		return fmt.Errorf("save %s: %w", u, err)
	}
	return nil
}

// ReadUrls reads a url list, one per line. Blank lines and lines starting with
// "#" are ignored.
func ReadUrls(path string) ([]string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var urls []string
	for _, line := range strings.Split(string(contents), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
