package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "version": "2.1",
  "generated_at": "2024-11-03T10:00:00Z",
  "source": "musicbrainz",
  "artists": {
    "mbid-zz-0001": {"name": "Zeppelin Tribute", "listeners": 1200},
    "mbid-aa-0002": {"name": "Aphex Twin", "listeners": 900000},
    "mbid-mm-0003": {"name": "Mogwai", "listeners": 450000}
  }
}`

func TestParseSeparatesMetadataFromArtists(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 3, doc.Artists.Len())
	assert.Equal(t, 3, doc.Metadata.Len())

	_, hasArtists := doc.Metadata.Get(ArtistsKey)
	assert.False(t, hasArtists, "artists key must not remain in metadata")

	version, ok := doc.Metadata.Get("version")
	require.True(t, ok)
	assert.Equal(t, `"2.1"`, string(version))
}

func TestParsePreservesKeyOrder(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	var artistIDs []string
	for pair := doc.Artists.Oldest(); pair != nil; pair = pair.Next() {
		artistIDs = append(artistIDs, pair.Key)
	}
	assert.Equal(t, []string{"mbid-zz-0001", "mbid-aa-0002", "mbid-mm-0003"}, artistIDs)

	var metaKeys []string
	for pair := doc.Metadata.Oldest(); pair != nil; pair = pair.Next() {
		metaKeys = append(metaKeys, pair.Key)
	}
	assert.Equal(t, []string{"version", "generated_at", "source"}, metaKeys)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{not json at all"},
		{"missing artists key", `{"version": "1.0"}`},
		{"artists is not a mapping", `{"artists": [1, 2, 3]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestReadMissingInput(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "no-such-file.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestReadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	doc, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Artists.Len())
}

func TestChunkInfo(t *testing.T) {
	chunkDoc := `{
  "version": "2.1",
  "chunk_index": 2,
  "chunk_artist_count": 5,
  "total_artist_count": 125,
  "artists": {}
}`
	doc, err := Parse([]byte(chunkDoc))
	require.NoError(t, err)

	index, count, total, ok := doc.ChunkInfo()
	require.True(t, ok)
	assert.Equal(t, 2, index)
	assert.Equal(t, 5, count)
	assert.Equal(t, 125, total)

	plain, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	_, _, _, ok = plain.ChunkInfo()
	assert.False(t, ok, "plain documents carry no chunk counters")
}

func TestPartitionWindows(t *testing.T) {
	doc := makeDoc(t, 7)

	chunks := doc.Partition(3)
	require.Len(t, chunks, 3)

	assert.Equal(t, []int{3, 3, 1}, []int{
		chunks[0].Artists.Len(),
		chunks[1].Artists.Len(),
		chunks[2].Artists.Len(),
	})

	// windows are consecutive and keep the original order
	i := 0
	for _, c := range chunks {
		assert.Equal(t, 7, c.Total)
		assert.Equal(t, c.Artists.Len(), c.Count)
		for pair := c.Artists.Oldest(); pair != nil; pair = pair.Next() {
			assert.Equal(t, fmt.Sprintf("mbid-%04d", i), pair.Key)
			i++
		}
	}
	assert.Equal(t, 7, i)
}

func TestPartitionEmpty(t *testing.T) {
	doc := makeDoc(t, 0)
	assert.Empty(t, doc.Partition(3))
}

func TestChunkEncodeShape(t *testing.T) {
	doc := makeDoc(t, 4)
	chunks := doc.Partition(4)
	require.Len(t, chunks, 1)

	data, err := chunks[0].Encode()
	require.NoError(t, err)

	// metadata first, counters next, artists last
	metaAt := bytes.Index(data, []byte(`"version"`))
	indexAt := bytes.Index(data, []byte(`"chunk_index"`))
	countAt := bytes.Index(data, []byte(`"chunk_artist_count"`))
	totalAt := bytes.Index(data, []byte(`"total_artist_count"`))
	artistsAt := bytes.Index(data, []byte(`"artists"`))
	require.True(t, metaAt >= 0 && indexAt >= 0 && countAt >= 0 && totalAt >= 0 && artistsAt >= 0)
	assert.Less(t, metaAt, indexAt)
	assert.Less(t, indexAt, countAt)
	assert.Less(t, countAt, totalAt)
	assert.Less(t, totalAt, artistsAt)

	// indented output
	assert.True(t, bytes.HasPrefix(data, []byte("{\n  ")))
}

func TestParseChunkRoundTrip(t *testing.T) {
	doc := makeDoc(t, 5)
	chunks := doc.Partition(2)
	require.Len(t, chunks, 3)

	data, err := chunks[2].Encode()
	require.NoError(t, err)

	parsed, err := ParseChunk(data)
	require.NoError(t, err)

	assert.Equal(t, 2, parsed.Index)
	assert.Equal(t, 1, parsed.Count)
	assert.Equal(t, 5, parsed.Total)
	assert.Equal(t, 1, parsed.Artists.Len())

	// counters stripped, original metadata intact
	_, hasCounter := parsed.Meta.Get(KeyChunkIndex)
	assert.False(t, hasCounter)
	assert.Equal(t, doc.Metadata.Len(), parsed.Meta.Len())
}

func TestParseChunkRejectsPlainDocument(t *testing.T) {
	_, err := ParseChunk([]byte(sampleDoc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

// makeDoc builds a document with n artists keyed mbid-0000..mbid-<n-1>
// and two metadata fields.
func makeDoc(t *testing.T, n int) *Document {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString(`{"version": "2.1", "source": "musicbrainz", "artists": {`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, `"mbid-%04d": {"name": "Artist %d"}`, i, i)
	}
	buf.WriteString("}}")

	doc, err := Parse(buf.Bytes())
	require.NoError(t, err)
	return doc
}
