package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"musiclegends/scrapers"
)

func newChartCommand(ctx *commandContext) *cobra.Command {
	var url string
	var limit int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the chart trending heroes are drawn from",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensure(); err != nil {
				return err
			}
			if url == "" {
				url = ctx.cfg.ChartURL
			}

			songs, err := scrapers.ScrapeChart(url, ctx.logger)
			if err != nil {
				return err
			}
			if limit > 0 && len(songs) > limit {
				songs = songs[:limit]
			}

			rows := make([][]string, 0, len(songs))
			for _, s := range songs {
				rows = append(rows, []string{strconv.Itoa(s.Rank), s.Title, s.Artist})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Title", "Artist"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Chart page to scrape (defaults to MUSICLEGENDS_CHART_URL)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries to print, 0 for all")
	return cmd
}
