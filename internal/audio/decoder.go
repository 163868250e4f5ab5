package audio

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	playerrors "github.com/jscyril/grootman/pkg/errors"
)

// SupportedFormats returns list of supported audio formats
func SupportedFormats() []string {
	return []string{".mp3", ".wav", ".flac"}
}

// IsSupported checks if a file or URL has a supported audio extension
func IsSupported(source string) bool {
	ext := Ext(source)
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// Ext returns the lowercased extension of a file path or URL path
func Ext(source string) string {
	if isURL(source) {
		if u, err := url.Parse(source); err == nil {
			return strings.ToLower(path.Ext(u.Path))
		}
	}
	return strings.ToLower(filepath.Ext(source))
}

// DecodeAudio decodes an audio stream based on the source's extension
func DecodeAudio(r io.ReadSeekCloser, source string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := Ext(source)

	switch ext {
	case ".mp3":
		return mp3.Decode(r)
	case ".wav":
		return wav.Decode(r)
	case ".flac":
		return flac.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", playerrors.ErrInvalidFormat, ext)
	}
}

// memoryFile lets an in-memory download be decoded like an open file
type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
