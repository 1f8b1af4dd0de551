package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"artistsplit/internal/document"
)

// Report is the outcome of checking a chunk directory.
type Report struct {
	Dir          string
	Chunks       int
	TotalArtists int
	Problems     []string
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

func (r *Report) addf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// VerifyDir checks a chunk directory against the invariants the
// splitter guarantees: contiguous zero-based indices, accurate
// per-chunk counts, one consistent total matching the summed entries,
// no artist in more than one chunk, and full chunks everywhere but
// the tail.
func VerifyDir(dir string) (*Report, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("open chunk directory %s: %w", dir, err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "chunk-*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan chunk directory %s: %w", dir, err)
	}
	// numeric order: chunk-100.json sorts after chunk-99.json
	sort.Slice(paths, func(i, j int) bool {
		a, aok := chunkIndex(filepath.Base(paths[i]))
		b, bok := chunkIndex(filepath.Base(paths[j]))
		if aok && bok && a != b {
			return a < b
		}
		return paths[i] < paths[j]
	})

	r := &Report{Dir: dir, Chunks: len(paths)}
	seen := make(map[string]string) // artist ID -> file that holds it
	sizes := make([]int, 0, len(paths))
	total := -1
	sum := 0

	for i, path := range paths {
		base := filepath.Base(path)
		if want := FileName(i); base != want {
			r.addf("expected %s, found %s", want, base)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			r.addf("%s: %v", base, err)
			continue
		}
		c, err := document.ParseChunk(raw)
		if err != nil {
			r.addf("%s: %v", base, err)
			continue
		}

		if c.Index != i {
			r.addf("%s: chunk_index is %d, expected %d", base, c.Index, i)
		}
		if c.Count != c.Artists.Len() {
			r.addf("%s: chunk_artist_count is %d, file holds %d entries", base, c.Count, c.Artists.Len())
		}
		if total == -1 {
			total = c.Total
		} else if c.Total != total {
			r.addf("%s: total_artist_count is %d, earlier chunks record %d", base, c.Total, total)
		}

		for pair := c.Artists.Oldest(); pair != nil; pair = pair.Next() {
			if prev, dup := seen[pair.Key]; dup {
				r.addf("%s: artist %s already present in %s", base, pair.Key, prev)
			} else {
				seen[pair.Key] = base
			}
		}
		sum += c.Artists.Len()
		sizes = append(sizes, c.Artists.Len())
	}

	if total >= 0 && sum != total {
		r.addf("chunks hold %d artists, files record total_artist_count %d", sum, total)
	}
	// every chunk but the last must be full, and the last may not
	// exceed the full size
	if len(sizes) > 1 {
		full := sizes[0]
		for i, n := range sizes[:len(sizes)-1] {
			if n != full {
				r.addf("%s: holds %d artists but only the last chunk may be short of %d", FileName(i), n, full)
			}
		}
		if last := sizes[len(sizes)-1]; last > full {
			r.addf("%s: holds %d artists, more than the chunk size %d", FileName(len(sizes)-1), last, full)
		}
	}

	r.TotalArtists = sum
	return r, nil
}

// chunkIndex parses the numeric index out of a chunk file name.
func chunkIndex(name string) (int, bool) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, "chunk-"), ".json")
	if trimmed == name {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return n, true
}
