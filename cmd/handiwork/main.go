package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "handiwork",
		Usage: "Search the forum and download whole threads",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if !c.Bool("debug") {
				log.SetOutput(io.Discard)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			searchCommand(),
			threadCommand(),
			postCommand(),
			userCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
