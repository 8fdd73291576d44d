package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pranesh-j/handiwork/internal/config"
	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/services"
	"github.com/pranesh-j/handiwork/internal/utils"
)

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "Print the raw JSON result",
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search threads, e.g. handiwork search tag:sandbox sort:likes farm",
		ArgsUsage: "[filters and keywords]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: services.DefaultResultLimit,
			},
			jsonFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			hq, err := utils.ParseQuery(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return fmt.Errorf("parsing query: %w", err)
			}
			client, err := config.Load().NewClient()
			if err != nil {
				return err
			}
			defer client.Close()

			res, err := client.SearchURLs(ctx, hq, c.Int("limit"))
			if err != nil {
				return fmt.Errorf("searching: %w", err)
			}
			if c.Bool("json") {
				return printJSON(res)
			}

			fmt.Printf("Found %d results (%s backend):\n", len(res.URLs), res.Backend)
			for i, u := range res.URLs {
				fmt.Printf("%d. %s\n", i+1, u)
			}
			return nil
		},
	}
}

func threadCommand() *cli.Command {
	return &cli.Command{
		Name:      "thread",
		Usage:     "Download a whole thread (needs HANDIWORK_USERNAME and HANDIWORK_PASSWORD)",
		ArgsUsage: "<thread id>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "preview",
				Usage: "Characters of each post to print",
				Value: 200,
			},
			jsonFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := argID(c)
			if err != nil {
				return err
			}
			client, err := connectedClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			thread, err := client.Thread(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching thread %d: %w", id, err)
			}
			if c.Bool("json") {
				return printJSON(thread)
			}

			now := time.Now()
			fmt.Printf("%s\n%s\n", thread.Title, thread.URL)
			if len(thread.Prefixes) > 0 {
				fmt.Printf("Prefixes: %s\n", strings.Join(thread.Prefixes, ", "))
			}
			if len(thread.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(thread.Tags, ", "))
			}
			fmt.Printf("Rating: %s\n", utils.FormatRating(thread.Rating))
			fmt.Printf("Created %s, %s posts\n\n", utils.FormatTimeAgo(thread.Created, now), utils.FormatNumber(len(thread.Posts)))
			for _, p := range thread.Posts {
				printPost(p, c.Int("preview"), now)
			}
			return nil
		},
	}
}

func postCommand() *cli.Command {
	return &cli.Command{
		Name:      "post",
		Usage:     "Print a single post",
		ArgsUsage: "<post id>",
		Flags:     []cli.Flag{jsonFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := argID(c)
			if err != nil {
				return err
			}
			client, err := config.Load().NewClient()
			if err != nil {
				return err
			}
			defer client.Close()

			post, err := client.Post(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching post %d: %w", id, err)
			}
			if c.Bool("json") {
				return printJSON(post)
			}
			printPost(post, 0, time.Now())
			return nil
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:      "user",
		Usage:     "Show a member profile",
		ArgsUsage: "<user id>",
		Flags:     []cli.Flag{jsonFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := argID(c)
			if err != nil {
				return err
			}
			client, err := config.Load().NewClient()
			if err != nil {
				return err
			}
			defer client.Close()

			user, err := client.User(ctx, id)
			if err != nil {
				return fmt.Errorf("resolving user %d: %w", id, err)
			}
			if c.Bool("json") {
				return printJSON(user)
			}
			fmt.Printf("%s (#%d)\n", user.Name, user.ID)
			if user.Title != "" {
				fmt.Println(user.Title)
			}
			fmt.Printf("Joined %s, %s messages\n", utils.FormatTimeAgo(user.Joined, time.Now()), utils.FormatNumber(user.MessageCount))
			return nil
		},
	}
}

func connectedClient(ctx context.Context) (*services.Client, error) {
	client, err := config.Load().NewClient()
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting: %w", err)
	}
	return client, nil
}

func argID(c *cli.Command) (int, error) {
	if c.Args().Len() != 1 {
		return 0, fmt.Errorf("expected exactly one id, got %d arguments", c.Args().Len())
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", c.Args().First())
	}
	return id, nil
}

func printPost(p models.Post, preview int, now time.Time) {
	fmt.Printf("#%d (post %d, user %d, %s)", p.Number, p.ID, p.OwnerID, utils.FormatTimeAgo(p.Published, now))
	if p.Bookmarked {
		fmt.Print(" [bookmarked]")
	}
	fmt.Println()
	msg := p.Message
	if preview > 0 {
		msg = utils.TruncateWithEllipsis(msg, preview)
	}
	fmt.Printf("%s\n\n", msg)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
