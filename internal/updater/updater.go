package updater

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/depot-labs/depot/internal/branding"
	"github.com/depot-labs/depot/internal/fetch"
)

// Release is the subset of a GitHub release the updater reads.
type Release struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Updater provides self-update functionality.
type Updater struct {
	currentVersion string
	releaseURL     string
	binaryURL      string
	httpClient     *http.Client
	downloader     *fetch.Client
	logger         *slog.Logger
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithReleaseURL overrides the endpoint queried for the latest release.
func WithReleaseURL(url string) Option {
	return func(u *Updater) {
		if url != "" {
			u.releaseURL = url
		}
	}
}

// WithBinaryURL overrides where the platform binary is downloaded from.
func WithBinaryURL(url string) Option {
	return func(u *Updater) {
		if url != "" {
			u.binaryURL = url
		}
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(u *Updater) {
		u.logger = l
	}
}

// New creates an Updater with the given current version and options.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		releaseURL:     branding.ReleaseURL(),
		binaryURL:      branding.BinaryURL(),
		httpClient:     http.DefaultClient,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.downloader = fetch.New(fetch.WithHTTPClient(u.httpClient))
	return u
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}
