package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ArtistsKey is the top-level key holding the artist mapping.
const ArtistsKey = "artists"

// Counter keys written into every chunk alongside the copied metadata.
const (
	KeyChunkIndex       = "chunk_index"
	KeyChunkArtistCount = "chunk_artist_count"
	KeyTotalArtistCount = "total_artist_count"
)

var (
	// ErrMissingInput marks an input path that does not exist.
	ErrMissingInput = errors.New("input file not found")
	// ErrParse marks input that is not a valid artist document.
	ErrParse = errors.New("invalid artist document")
)

// Document is a parsed artist document: the artist mapping plus every
// other top-level field. Key order is preserved exactly as it appears
// in the source file; it decides chunk membership.
type Document struct {
	Metadata *orderedmap.OrderedMap[string, json.RawMessage]
	Artists  *orderedmap.OrderedMap[string, json.RawMessage]
}

// Read loads and parses the document at path.
func Read(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a document, separating the artist mapping from the
// remaining top-level metadata. Artist records and metadata values are
// kept as raw JSON and never re-interpreted.
func Parse(raw []byte) (*Document, error) {
	top := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(raw, top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	artistsRaw, ok := top.Get(ArtistsKey)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", ErrParse, ArtistsKey)
	}
	artists := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(artistsRaw, artists); err != nil {
		return nil, fmt.Errorf("%w: %q is not a mapping: %v", ErrParse, ArtistsKey, err)
	}
	top.Delete(ArtistsKey)

	return &Document{Metadata: top, Artists: artists}, nil
}

// ChunkInfo reports the chunk counters when the document was read from
// a chunk file. ok is false for a plain input document.
func (d *Document) ChunkInfo() (index, count, total int, ok bool) {
	var err error
	if index, err = intField(d.Metadata, KeyChunkIndex); err != nil {
		return 0, 0, 0, false
	}
	if count, err = intField(d.Metadata, KeyChunkArtistCount); err != nil {
		return 0, 0, 0, false
	}
	if total, err = intField(d.Metadata, KeyTotalArtistCount); err != nil {
		return 0, 0, 0, false
	}
	return index, count, total, true
}

func intField(m *orderedmap.OrderedMap[string, json.RawMessage], key string) (int, error) {
	raw, ok := m.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing %q key", ErrParse, key)
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer: %v", ErrParse, key, err)
	}
	return n, nil
}
