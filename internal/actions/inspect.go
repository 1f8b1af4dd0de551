package actions

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"artistsplit/internal/document"
)

// Inspect prints the shape of an artist document or a single chunk
// file without modifying anything.
func Inspect(c *cli.Context) error {
	path := c.String("input")

	doc, err := document.Read(path)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", path)
	if index, count, total, ok := doc.ChunkInfo(); ok {
		fmt.Printf("Chunk %d: %s of %s artists\n",
			index, humanize.Comma(int64(count)), humanize.Comma(int64(total)))
	}
	fmt.Printf("Artists: %s\n", humanize.Comma(int64(doc.Artists.Len())))

	if doc.Metadata.Len() > 0 {
		fmt.Println("Metadata keys:")
		for pair := doc.Metadata.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Printf("  %s\n", pair.Key)
		}
	}
	return nil
}
