package media

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/slidewire/slidewire/internal/config"
)

// Fetcher downloads remote media through a retrying, rate-limited
// HTTP client.
type Fetcher struct {
	client   *resty.Client
	limiter  *rate.Limiter
	maxBytes int64
}

// NewFetcher creates a fetcher from media settings.
func NewFetcher(cfg config.MediaConfig) *Fetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "slidewire/1.0")
	client.SetTransport(retryClient.HTTPClient.Transport)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Fetcher{
		client:   client,
		limiter:  limiter,
		maxBytes: cfg.MaxDownloadBytes,
	}
}

// FetchImage downloads the image behind rawURL into a temp file and
// returns the file path and the sniffed MIME type. SVG content is
// rejected; the caller removes the file when done with it.
func (f *Fetcher) FetchImage(ctx context.Context, rawURL string) (string, string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", "", fmt.Errorf("url must use http or https")
	}

	body, err := f.fetch(ctx, rawURL)
	if err != nil {
		return "", "", err
	}

	mtype := mimetype.Detect(body)
	if mtype.Is("image/svg+xml") || strings.HasSuffix(strings.ToLower(parsed.Path), ".svg") {
		return "", "", fmt.Errorf("SVG images are not supported here; use media.add_icon for vector icons")
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", "", fmt.Errorf("url did not yield an image; detected %s", mtype.String())
	}

	path, err := writeTemp(body, mtype.Extension())
	if err != nil {
		return "", "", err
	}
	return path, mtype.String(), nil
}

// FetchText downloads and returns a small text resource.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	body, err := f.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", rawURL, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch %s returned status %d", rawURL, resp.StatusCode())
	}

	body := resp.Body()
	if f.maxBytes > 0 && int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("download of %s exceeds the %d byte limit", rawURL, f.maxBytes)
	}
	return body, nil
}

func writeTemp(data []byte, ext string) (string, error) {
	file, err := os.CreateTemp("", "slidewire-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return file.Name(), nil
}
