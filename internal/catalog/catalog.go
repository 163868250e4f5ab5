package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/jscyril/grootman/api"
	playerrors "github.com/jscyril/grootman/pkg/errors"
)

// DefaultSlug names the collection loaded when none is requested
const DefaultSlug = "default"

// ErrorMessage is shown in place of the track list when loading fails
const ErrorMessage = "Failed to load songs. Please try again later."

var slugStrip = regexp.MustCompile(`['\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// Slug derives the lookup key of a collection: lowercased, with every run of
// apostrophes and whitespace removed. Only an empty name maps to
// DefaultSlug; a name of nothing but whitespace yields an empty slug.
func Slug(name string) string {
	if name == "" {
		return DefaultSlug
	}
	return slugStrip.ReplaceAllString(strings.ToLower(name), "")
}

// Result is the outcome of a catalog load as seen by the UI. On failure
// Tracks is empty and Err describes why.
type Result struct {
	Slug   string
	Tracks []api.Track
	Err    error
}

// Loader fetches collections from {base}/jsonfiles/{slug}.json. base is an
// http(s) URL or a local directory.
type Loader struct {
	base   string
	client *http.Client
	log    *log.Entry
}

// Option configures a Loader
type Option func(*Loader)

// WithHTTPClient overrides the client used for remote catalogs
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) { l.client = client }
}

// WithLogger sets the log entry the loader writes to
func WithLogger(entry *log.Entry) Option {
	return func(l *Loader) { l.log = entry }
}

// NewLoader creates a loader rooted at base
func NewLoader(base string, opts ...Option) *Loader {
	l := &Loader{
		base:   base,
		client: http.DefaultClient,
		log:    log.WithField("component", "catalog"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Location returns where the collection with the given slug is read from
func (l *Loader) Location(slug string) string {
	if l.remote() {
		return strings.TrimRight(l.base, "/") + "/jsonfiles/" + url.PathEscape(slug) + ".json"
	}
	return filepath.Join(l.base, "jsonfiles", slug+".json")
}

// Load fetches the named collection. Failures are returned as a
// *errors.CatalogError and never leave partial results.
func (l *Loader) Load(ctx context.Context, name string) ([]api.Track, error) {
	slug := Slug(name)
	location := l.Location(slug)
	entry := l.log.WithFields(log.Fields{"slug": slug, "url": location})

	var (
		tracks []api.Track
		err    error
	)
	if l.remote() {
		tracks, err = l.fetch(ctx, slug, location)
	} else {
		tracks, err = l.read(slug, location)
	}
	if err != nil {
		entry.WithError(err).Error("Error fetching catalog")
		return nil, err
	}

	tracks = lo.Map(tracks, func(t api.Track, i int) api.Track {
		t.Index = i
		t.FilePath = l.resolve(t.FilePath)
		t.CoverPath = l.resolve(t.CoverPath)
		return t
	})
	entry.WithField("tracks", len(tracks)).Info("Catalog loaded")
	return tracks, nil
}

// LoadResult is Load folded into a Result
func (l *Loader) LoadResult(ctx context.Context, name string) Result {
	tracks, err := l.Load(ctx, name)
	return Result{Slug: Slug(name), Tracks: tracks, Err: err}
}

func (l *Loader) fetch(ctx context.Context, slug, location string) ([]api.Track, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &playerrors.CatalogError{Slug: slug, URL: location, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &playerrors.CatalogError{Slug: slug, URL: location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &playerrors.CatalogError{Slug: slug, URL: location, Status: resp.StatusCode}
	}
	return decode(slug, location, resp.Body)
}

func (l *Loader) read(slug, location string) ([]api.Track, error) {
	fd, err := os.Open(location)
	if err != nil {
		return nil, &playerrors.CatalogError{Slug: slug, URL: location, Err: err}
	}
	defer fd.Close()
	return decode(slug, location, fd)
}

func decode(slug, location string, r io.Reader) ([]api.Track, error) {
	var tracks []api.Track
	if err := json.NewDecoder(r).Decode(&tracks); err != nil {
		return nil, &playerrors.CatalogError{Slug: slug, URL: location, Err: fmt.Errorf("decode catalog: %w", err)}
	}
	return tracks, nil
}

// resolve turns a track's file or cover reference into something the audio
// backend can open: absolute URLs stay as they are, other references are
// taken relative to the catalog base.
func (l *Loader) resolve(ref string) string {
	if ref == "" || isURL(ref) {
		return ref
	}
	if l.remote() {
		base, err := url.Parse(l.base)
		if err != nil {
			return ref
		}
		rel, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return base.ResolveReference(rel).String()
	}
	if filepath.IsAbs(ref) && fileExists(ref) {
		return ref
	}
	return filepath.Join(l.base, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
}

func (l *Loader) remote() bool {
	return isURL(l.base)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
