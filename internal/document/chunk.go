package document

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Chunk is one partition of the artist mapping: the document's
// metadata plus counters and the artist entries assigned to it.
type Chunk struct {
	Meta    *orderedmap.OrderedMap[string, json.RawMessage]
	Index   int
	Count   int // chunk_artist_count as recorded in the file
	Total   int
	Artists *orderedmap.OrderedMap[string, json.RawMessage]
}

// Partition slices the artist mapping into consecutive windows of at
// most size entries, in original order, covering every entry exactly
// once. The windows share the document's metadata and raw records, so
// this does not copy artist data.
func (d *Document) Partition(size int) []*Chunk {
	if size < 1 {
		return nil
	}

	total := d.Artists.Len()
	chunks := make([]*Chunk, 0, (total+size-1)/size)

	var cur *Chunk
	i := 0
	for pair := d.Artists.Oldest(); pair != nil; pair = pair.Next() {
		if i%size == 0 {
			cur = &Chunk{
				Meta:    d.Metadata,
				Index:   len(chunks),
				Total:   total,
				Artists: orderedmap.New[string, json.RawMessage](),
			}
			chunks = append(chunks, cur)
		}
		cur.Artists.Set(pair.Key, pair.Value)
		i++
	}

	for _, c := range chunks {
		c.Count = c.Artists.Len()
	}
	return chunks
}

// Encode serializes the chunk as indented JSON: metadata keys first
// and unchanged, then the counters, then the artists.
func (c *Chunk) Encode() ([]byte, error) {
	out := orderedmap.New[string, any]()
	for pair := c.Meta.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	out.Set(KeyChunkIndex, c.Index)
	out.Set(KeyChunkArtistCount, c.Artists.Len())
	out.Set(KeyTotalArtistCount, c.Total)
	out.Set(ArtistsKey, c.Artists)

	return json.MarshalIndent(out, "", "  ")
}

// ParseChunk decodes one chunk file produced by the splitter. The
// counters are stripped from Meta so it matches the source document's
// metadata.
func ParseChunk(raw []byte) (*Chunk, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	index, err := intField(doc.Metadata, KeyChunkIndex)
	if err != nil {
		return nil, err
	}
	count, err := intField(doc.Metadata, KeyChunkArtistCount)
	if err != nil {
		return nil, err
	}
	total, err := intField(doc.Metadata, KeyTotalArtistCount)
	if err != nil {
		return nil, err
	}
	doc.Metadata.Delete(KeyChunkIndex)
	doc.Metadata.Delete(KeyChunkArtistCount)
	doc.Metadata.Delete(KeyTotalArtistCount)

	return &Chunk{
		Meta:    doc.Metadata,
		Index:   index,
		Count:   count,
		Total:   total,
		Artists: doc.Artists,
	}, nil
}

// String identifies the chunk in error and log messages.
func (c *Chunk) String() string {
	return fmt.Sprintf("chunk %d (%d of %d artists)", c.Index, c.Artists.Len(), c.Total)
}
