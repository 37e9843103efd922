package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/storage"
	"github.com/spf13/cobra"
)

func newScrambleCmd(a *app) *cobra.Command {
	var (
		n     int
		seed  uint64
		save  string
		color bool
	)
	cmd := &cobra.Command{
		Use:   "scramble",
		Short: "Print a random scramble",
		Long: `Prints a random scramble and the cube it produces. The length defaults to
scramble_length from the settings. With --save the scrambled cube is stored as
a save that play --load and tui --load can start from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				n = a.settings.ScrambleLength
			}
			if n <= 0 {
				return fmt.Errorf("scramble length %d must be positive", n)
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			c := cube.NewRubiksCube(cube.WithLogger(a.logger.Named("cube")))
			moves := c.Scramble(rand.New(rand.NewPCG(seed, seed^0x5deece66d)), n)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cube.FormatMoves(moves))
			fmt.Fprintln(out)
			printCube(out, c.State(), color)

			if save == "" {
				return nil
			}
			db, repo, err := a.openSaves()
			if err != nil {
				return err
			}
			defer db.Close()
			info, err := repo.Save(cmd.Context(), save, storage.Snapshot{State: c.State(), History: c.History()})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "saved:  %s (%s)\n", info.Name, info.ID)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "length", "n", 25, "number of moves")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	cmd.Flags().StringVar(&save, "save", "", "store the scrambled cube under this name")
	cmd.Flags().BoolVar(&color, "color", false, "draw the net with colored cells")
	return cmd
}
