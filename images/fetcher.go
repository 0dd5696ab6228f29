// Package images fetches poster and backdrop bytes for the image
// cache. Decoding stays with the UI layer; the fetcher only enforces
// that the payload is an image of a reasonable size.
package images

import (
	"errors"
	"fmt"
	"time"

	"github.com/alorle/iptv-deck/internal/httpx"
)

// DefaultMaxBytes caps one poster download
const DefaultMaxBytes = 8 << 20

// DefaultTimeout bounds one poster download
const DefaultTimeout = 20 * time.Second

// ErrEmptyURL is returned for items that have no artwork
var ErrEmptyURL = errors.New("no image URL")

// Fetcher downloads raw image bytes, keyed by URL
type Fetcher struct {
	http     *httpx.Client
	maxBytes int64
}

// NewFetcher creates a Fetcher with the default timeout and size cap
func NewFetcher() *Fetcher {
	return &Fetcher{
		http:     httpx.New(DefaultTimeout),
		maxBytes: DefaultMaxBytes,
	}
}

// Fetch implements cache.Fetcher for image URLs
func (f *Fetcher) Fetch(url string) ([]byte, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	body, err := f.http.GetBytes(url, f.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty image response from %s", url)
	}
	if !looksLikeImage(body) {
		return nil, fmt.Errorf("response from %s is not an image", url)
	}
	return body, nil
}

// looksLikeImage sniffs the magic bytes of the formats poster CDNs
// actually serve: JPEG, PNG, GIF and WebP
func looksLikeImage(body []byte) bool {
	if len(body) < 12 {
		return false
	}
	switch {
	case body[0] == 0xFF && body[1] == 0xD8 && body[2] == 0xFF:
		return true // JPEG
	case body[0] == 0x89 && body[1] == 'P' && body[2] == 'N' && body[3] == 'G':
		return true // PNG
	case body[0] == 'G' && body[1] == 'I' && body[2] == 'F' && body[3] == '8':
		return true // GIF
	case body[0] == 'R' && body[1] == 'I' && body[2] == 'F' && body[3] == 'F' &&
		body[8] == 'W' && body[9] == 'E' && body[10] == 'B' && body[11] == 'P':
		return true // WebP
	}
	return false
}
