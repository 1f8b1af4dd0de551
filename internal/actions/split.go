package actions

import (
	"context"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/phuslu/log"
	"github.com/urfave/cli/v2"

	"artistsplit/internal/config"
	"artistsplit/internal/splitter"
)

// Split partitions an artist document into chunk files.
func Split(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	input := cfg.Input
	outputDir := cfg.OutputDir
	chunkSize := cfg.ChunkSize
	if c.IsSet("input") {
		input = c.String("input")
	}
	if c.IsSet("output") {
		outputDir = c.String("output")
	}
	if c.IsSet("chunk-size") {
		chunkSize = c.Int("chunk-size")
	}

	if c.Bool("interactive") {
		err = huh.NewInput().
			Title("Path to the artist document").
			Value(&input).
			Run()
		if err != nil {
			return err
		}
		err = huh.NewInput().
			Title("Directory for the chunk files").
			Value(&outputDir).
			Run()
		if err != nil {
			return err
		}
	}

	log.Info().
		Str("input", input).
		Str("output", outputDir).
		Int("chunk_size", chunkSize).
		Msg("starting split")

	s := splitter.New(chunkSize, os.Stdout)

	var result *splitter.Result
	run := func(ctx context.Context) error {
		var err error
		result, err = s.Split(input, outputDir)
		return err
	}

	if c.Bool("interactive") {
		err = spinner.New().Title("Splitting...").Context(c.Context).ActionWithErr(run).Run()
	} else {
		err = run(c.Context)
	}
	if err != nil {
		log.Error().Err(err).Msg("split failed")
		return err
	}

	log.Info().
		Int("chunks", result.Chunks).
		Int("artists", result.TotalArtists).
		Str("output", result.OutputDir).
		Msg("split complete")
	return nil
}
