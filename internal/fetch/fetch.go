// Package fetch downloads remote files into a local directory. It is the HTTP
// collaborator used for remote artifact installs and for self-update.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/depot-labs/depot/internal/branding"
	"golang.org/x/term"
)

// Client performs downloads.
type Client struct {
	httpClient *http.Client
	progress   io.Writer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithProgress directs percentage updates to w. Pass nil to disable them.
func WithProgress(w io.Writer) Option {
	return func(cl *Client) {
		cl.progress = w
	}
}

// New creates a Client. By default progress is written to stderr when it is
// a terminal.
func New(opts ...Option) *Client {
	c := &Client{httpClient: http.DefaultClient}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		c.progress = os.Stderr
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileName returns the last path segment of a URL, ignoring query and fragment.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("url %q has no file name", rawURL)
	}
	return name, nil
}

// Download fetches rawURL into destDir, keeping the URL's file name, and
// returns the local path. A partially written file is removed on failure.
func (c *Client) Download(ctx context.Context, rawURL, destDir string) (string, error) {
	name, err := FileName(rawURL)
	if err != nil {
		return "", err
	}
	return c.DownloadTo(ctx, rawURL, filepath.Join(destDir, name))
}

// DownloadTo fetches rawURL into the exact file destPath.
func (c *Client) DownloadTo(ctx context.Context, rawURL, destPath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName()+"-fetch")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s returned status %d", rawURL, resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}

	var src io.Reader = resp.Body
	if c.progress != nil && resp.ContentLength > 0 {
		src = &progressReader{r: resp.Body, total: resp.ContentLength, w: c.progress, last: -1}
	}

	_, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if c.progress != nil && resp.ContentLength > 0 {
		fmt.Fprintln(c.progress)
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}

	return destPath, nil
}

type progressReader struct {
	r     io.Reader
	w     io.Writer
	total int64
	done  int64
	last  int
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.done += int64(n)
	if percent := int(p.done * 100 / p.total); percent != p.last {
		fmt.Fprintf(p.w, "\rDownloading... %d%%", percent)
		p.last = percent
	}
	return n, err
}
