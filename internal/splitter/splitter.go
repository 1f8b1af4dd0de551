package splitter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"artistsplit/internal/document"
)

// DefaultChunkSize is the number of artists per chunk when nothing
// else is configured.
const DefaultChunkSize = 60000

// Splitter partitions one artist document into numbered chunk files.
type Splitter struct {
	ChunkSize int
	Progress  io.Writer
}

// New creates a Splitter writing progress text to w. A size below 1
// falls back to DefaultChunkSize; a nil writer discards progress.
func New(size int, w io.Writer) *Splitter {
	if size < 1 {
		size = DefaultChunkSize
	}
	if w == nil {
		w = io.Discard
	}
	return &Splitter{ChunkSize: size, Progress: w}
}

// Result summarizes a completed split.
type Result struct {
	Chunks       int
	TotalArtists int
	OutputDir    string
}

// Split reads the document at inputPath and writes its chunk files
// under outputDir. The output directory is only created once the
// input is known to exist and parse.
func (s *Splitter) Split(inputPath, outputDir string) (*Result, error) {
	doc, err := document.Read(inputPath)
	if err != nil {
		return nil, err
	}
	return s.SplitDocument(doc, outputDir)
}

// SplitDocument partitions an already-parsed document into chunk
// files under outputDir. Writes abort on the first failure; chunks
// already written stay in place.
func (s *Splitter) SplitDocument(doc *document.Document, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	total := doc.Artists.Len()
	chunks := doc.Partition(s.ChunkSize)

	fmt.Fprintf(s.Progress, "Total artists: %s\n", humanize.Comma(int64(total)))
	fmt.Fprintf(s.Progress, "Chunk size: %s\n", humanize.Comma(int64(s.ChunkSize)))
	fmt.Fprintf(s.Progress, "Creating %d chunks\n", len(chunks))

	written := 0
	for _, c := range chunks {
		data, err := c.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode chunk %d: %w", c.Index, err)
		}
		path := filepath.Join(outputDir, FileName(c.Index))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}

		written += c.Artists.Len()
		percent := 100.0
		if total > 0 {
			percent = float64(written) / float64(total) * 100
		}
		fmt.Fprintf(s.Progress, "Chunk %d: %s artists (%.1f%% complete)\n",
			c.Index, humanize.Comma(int64(c.Artists.Len())), percent)
	}

	fmt.Fprintf(s.Progress, "Split complete: %d chunk files in %s, %s artists total\n",
		len(chunks), outputDir, humanize.Comma(int64(total)))

	return &Result{Chunks: len(chunks), TotalArtists: total, OutputDir: outputDir}, nil
}

// FileName returns the file name for a chunk index, zero-padded to two
// digits (chunk-00.json, chunk-01.json, ...).
func FileName(index int) string {
	return fmt.Sprintf("chunk-%02d.json", index)
}
