// Package linkcheck probes bookmark URLs and reports the ones that no
// longer answer.
package linkcheck

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/chromemarks/internal/model"
)

const (
	DefaultConcurrency = 8
	DefaultTimeout     = 10 * time.Second
	maxRedirects       = 10
)

// Status represents the health of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410
	Unreachable               // timeout, DNS failure, refused, other status codes
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Target is a bookmark to probe, with the folders leading to it.
type Target struct {
	Bookmark *model.Bookmark
	Path     []string
}

// Result holds the outcome for a single target.
type Result struct {
	Target
	Status     Status
	StatusCode int    // 0 if no response arrived
	Error      string // reason for Unreachable
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Options configure a Checker.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	// ExcludeDomains are hosts whose 404s usually mean "private", not "gone".
	// Subdomains match too.
	ExcludeDomains []string
	Client         *http.Client // optional
}

// Checker probes URLs with a bounded number of workers.
type Checker struct {
	client      *http.Client
	concurrency int
	exclude     map[string]bool
}

// New creates a Checker, filling in defaults for zero options.
func New(opts Options) *Checker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	exclude := make(map[string]bool, len(opts.ExcludeDomains))
	for _, domain := range opts.ExcludeDomains {
		exclude[strings.ToLower(domain)] = true
	}

	return &Checker{client: client, concurrency: opts.Concurrency, exclude: exclude}
}

// Targets collects every bookmark below root with an http(s) URL.
func Targets(root *model.Folder) []Target {
	var targets []Target
	root.Walk(func(path []string, b *model.Bookmark) {
		if strings.HasPrefix(b.URL, "http://") || strings.HasPrefix(b.URL, "https://") {
			targets = append(targets, Target{Bookmark: b, Path: path})
		}
	})
	return targets
}

// Check probes every target and returns results in input order. Targets
// not yet started when ctx is cancelled are reported as Unreachable.
func (c *Checker) Check(ctx context.Context, targets []Target, onProgress ProgressFunc) []Result {
	if len(targets) == 0 {
		return nil
	}

	results := make([]Result, len(targets))
	jobs := make(chan int, len(targets))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < c.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = c.checkTarget(ctx, targets[idx])

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(targets))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range targets {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func (c *Checker) checkTarget(ctx context.Context, target Target) Result {
	result := Result{Target: target}

	if err := ctx.Err(); err != nil {
		result.Status = Unreachable
		result.Error = "Cancelled"
		return result
	}

	// HEAD first; some servers reject it, so fall back to GET.
	resp, err := c.do(ctx, http.MethodHead, target.Bookmark.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = c.do(ctx, http.MethodGet, target.Bookmark.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if c.isExcluded(target.Bookmark.URL) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

// isExcluded reports whether the URL's host or a parent domain is excluded.
func (c *Checker) isExcluded(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range c.exclude {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError turns transport errors into short categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
