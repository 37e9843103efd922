package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/debug"
	"github.com/spf13/cobra"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		from  string
		color bool
	)
	cmd := &cobra.Command{
		Use:   "apply <moves>",
		Short: "Apply moves and print the resulting cube",
		Long: `Applies moves in face turn notation (R U R' U2, M E S, x y z) to a solved
cube, or to --state, and prints the net and whether the cube is solved.`,
		Example: `  rubiks apply "R U R' U'"
  rubiks apply --state WWWWWWWWWYYYYYYYYYGGGGGGGGGBBBBBBBBBRRRRRRRRROOOOOOOOO F2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moves, err := cube.ParseMoves(strings.Join(args, " "))
			if err != nil {
				return err
			}

			opts := []cube.RubiksCubeBuilderOption{cube.WithLogger(a.logger.Named("cube"))}
			if from != "" {
				s, err := cube.ParseState(from)
				if err != nil {
					return err
				}
				opts = append(opts, cube.WithState(s))
			}
			c := cube.NewRubiksCube(opts...)
			c.Apply(moves...)

			printCube(cmd.OutOrStdout(), c.State(), color)
			fmt.Fprintf(cmd.OutOrStdout(), "moves:  %s\n", cube.FormatMoves(moves))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "state", "", "start from these 54 sticker colors instead of a solved cube")
	cmd.Flags().BoolVar(&color, "color", false, "draw the net with colored cells")
	return cmd
}

// printCube writes the net, validity and solved flag of s.
func printCube(w io.Writer, s cube.State, color bool) {
	if color {
		fmt.Fprint(w, debug.RenderNet(s))
	} else {
		fmt.Fprint(w, s.Net())
	}
	valid := "yes"
	if err := cube.Validate(s); err != nil {
		valid = err.Error()
	}
	fmt.Fprintf(w, "\nstate:  %s\nvalid:  %s\nsolved: %t\n", s.String(), valid, s.IsSolved())
}
