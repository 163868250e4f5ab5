package catalog

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"golang.org/x/sync/errgroup"

	"github.com/jscyril/grootman/api"
)

// DefaultCover replaces a missing cover reference
const DefaultCover = "/images/default-cover.png"

// enrichWorkers bounds concurrent tag reads
const enrichWorkers = 4

// Enrich fills in what a catalog entry leaves out. A missing song name is
// read from the audio file's tags when the file is local, falling back to
// the file name; a missing cover becomes DefaultCover. Unreadable files are
// not an error.
func (l *Loader) Enrich(ctx context.Context, tracks []api.Track) []api.Track {
	out := make([]api.Track, len(tracks))
	copy(out, tracks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichWorkers)
	for i := range out {
		if out[i].CoverPath == "" {
			out[i].CoverPath = l.resolve(DefaultCover)
		}
		if out[i].SongName != "" {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			name, err := readTitle(out[i].FilePath)
			if err != nil {
				l.log.WithError(err).WithField("file", out[i].FilePath).Debug("No tag title")
			}
			out[i].SongName = name
			return nil
		})
	}
	g.Wait()
	return out
}

// readTitle returns the title tag of a local audio file, or a name derived
// from the reference when there is none.
func readTitle(ref string) (string, error) {
	fallback := baseName(ref)
	if isURL(ref) {
		return fallback, nil
	}

	file, err := os.Open(ref)
	if err != nil {
		return fallback, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return fallback, fmt.Errorf("read metadata: %w", err)
	}
	return getOrDefault(strings.TrimSpace(metadata.Title()), fallback), nil
}

// baseName strips directories and extension from a path or URL
func baseName(ref string) string {
	if u, err := url.Parse(ref); err == nil && isURL(ref) {
		name := path.Base(u.Path)
		return strings.TrimSuffix(name, path.Ext(name))
	}
	name := filepath.Base(ref)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// getOrDefault returns the value if non-empty, otherwise returns the default
func getOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
