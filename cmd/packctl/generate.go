package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"musiclegends/cards"
	"musiclegends/packs"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var seed uint64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate <hero>",
		Short: "Generate a pack around a YouTube video or lastfm:<artist>::<track> hero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensure(); err != nil {
				return err
			}

			var opts []packs.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, packs.WithRand(func() *rand.Rand {
					return rand.New(rand.NewPCG(seed, seed))
				}))
			}
			gen := packs.NewGenerator(ctx.lookup, cards.NewFactory(cards.DefaultTables()), packs.DefaultConfig(), ctx.logger, opts...)

			result := gen.Generate(cmd.Context(), args[0])
			if !result.Success {
				return fmt.Errorf("generate %s: %s", args[0], result.Error)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printPack(out, result)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed the random source for a reproducible pack")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the pack as JSON")
	return cmd
}

func printPack(w io.Writer, result packs.Result) {
	rows := make([][]string, 0, 5)
	for _, c := range result.Cards() {
		rows = append(rows, []string{
			c.CardType,
			c.Name,
			c.Artist,
			c.Rarity.String(),
			strconv.Itoa(c.Power),
			strconv.Itoa(c.Cost),
			strings.Join(c.Abilities, ", "),
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Slot", "Track", "Artist", "Rarity", "Power", "Cost", "Abilities"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))

	fmt.Fprintf(w, "Total power: %d  Attempts: %d", result.TotalPower, result.Attempts)
	if result.ForcedBalance {
		fmt.Fprint(w, "  (forced balance)")
	}
	fmt.Fprintln(w)
	if report := result.Quality; report != nil {
		fmt.Fprintf(w, "Quality: %.2f (balance %.2f, variety %.2f, abilities %.2f, names %.2f)\n",
			report.Score, report.PowerBalance, report.RarityVariety, report.AbilityDepth, report.UniqueNames)
		for _, issue := range report.Issues {
			fmt.Fprintf(w, "  ! %s\n", issue)
		}
	}
}
