package actions

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/phuslu/log"
	"github.com/urfave/cli/v2"

	"artistsplit/internal/splitter"
)

// Verify checks a chunk directory for consistency and exits non-zero
// when any invariant is violated.
func Verify(c *cli.Context) error {
	dir := c.String("dir")

	report, err := splitter.VerifyDir(dir)
	if err != nil {
		return err
	}

	fmt.Printf("Directory: %s\n", report.Dir)
	fmt.Printf("Chunks: %d\n", report.Chunks)
	fmt.Printf("Artists: %s\n", humanize.Comma(int64(report.TotalArtists)))

	if !report.OK() {
		for _, p := range report.Problems {
			log.Error().Str("dir", dir).Msg(p)
		}
		return cli.Exit(fmt.Sprintf("%d problems found in %s", len(report.Problems), dir), 1)
	}

	fmt.Println("All checks passed")
	return nil
}
