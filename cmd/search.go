package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/woodshed/internal/shared"
	"github.com/desertthunder/woodshed/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Search prints catalog candidates for a query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query is required", shared.ErrMissingArgument)
	}

	config, err := r.configFor(cmd)
	if err != nil {
		return err
	}

	searcher := tasks.NewSearcher(r.catalogFor(config), config.Catalog.Timeout(), r.logger)
	outcome := searcher.Search(ctx, query)
	if outcome.Failed() {
		return outcome.Err
	}

	results := outcome.Results
	if limit := cmd.Int("limit"); limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	if len(results) == 0 {
		return r.writePlain("No results for %q\n", query)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	for i, c := range results {
		line := fmt.Sprintf("%d. %s - %s", i+1, c.Artist, c.Title)
		if c.Album != "" {
			line += fmt.Sprintf(" (%s)", c.Album)
		}
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
