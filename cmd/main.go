package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/urfave/cli/v2"

	"artistsplit/internal/actions"
)

func main() {
	// .env is optional; the real environment always wins
	godotenv.Load()

	log.DefaultLogger = log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{ColorOutput: true, EndWithMessage: true},
	}

	app := &cli.App{
		Name:  "artistsplit",
		Usage: "artistsplit splits a large enriched artist JSON document into fixed-size chunk files.",
		Commands: []*cli.Command{
			{
				Name:  "split",
				Usage: "Split an artist document into chunk files",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "path to the artist document"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "directory for the chunk files"},
					&cli.IntFlag{Name: "chunk-size", Aliases: []string{"n"}, Usage: "artists per chunk"},
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a TOML config file"},
					&cli.BoolFlag{Name: "interactive", Usage: "prompt for paths and show a spinner"},
				},
				Action: actions.Split,
			},
			{
				Name:  "inspect",
				Usage: "Show the shape of a document or chunk file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "file to inspect", Required: true},
				},
				Action: actions.Inspect,
			},
			{
				Name:  "verify",
				Usage: "Check a chunk directory for consistency",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "chunk directory", Required: true},
				},
				Action: actions.Verify,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
