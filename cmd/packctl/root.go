package main

import (
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"musiclegends/config"
	"musiclegends/lastfm"
	"musiclegends/metrics"
	"musiclegends/spotify"
	"musiclegends/youtube"
)

type commandContext struct {
	verbose *bool

	once   sync.Once
	cfg    config.Config
	logger *zap.Logger
	lookup metrics.Lookup
	err    error
}

func newRootCommand() *cobra.Command {
	var verbose bool
	ctx := &commandContext{verbose: &verbose}

	rootCmd := &cobra.Command{
		Use:           "packctl",
		Short:         "Generate and inspect Music Legends packs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log collaborator traffic to stderr")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newChartCommand(ctx))
	return rootCmd
}

// ensure loads config and builds lookups once per process.
func (c *commandContext) ensure() error {
	c.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.err = err
			return
		}
		c.cfg = cfg

		c.logger = zap.NewNop()
		if c.verbose != nil && *c.verbose {
			if c.logger, err = zap.NewDevelopment(); err != nil {
				c.err = err
				return
			}
		}

		if c.lookup != nil {
			return
		}
		router := &metrics.Router{}
		sp := spotify.ProvideSpotify(cfg, c.logger)
		yt, err := youtube.ProvideYouTube(cfg, sp, c.logger)
		if err != nil {
			c.err = err
			return
		}
		if yt != nil {
			router.YouTube = yt
		}
		if fm := lastfm.ProvideLastFM(cfg, c.logger); fm != nil {
			router.LastFM = fm
		}
		c.lookup = router
	})
	return c.err
}
