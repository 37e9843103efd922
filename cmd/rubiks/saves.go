package main

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-rubiks/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newSavesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage saved games",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saves, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, repo, err := a.openSaves()
			if err != nil {
				return err
			}
			defer db.Close()

			saves, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(saves) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saves")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), savesTable(saves))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a saved cube",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, repo, err := a.openSaves()
			if err != nil {
				return err
			}
			defer db.Close()

			snap, err := repo.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCube(cmd.OutOrStdout(), snap.State, false)
			fmt.Fprintf(cmd.OutOrStdout(), "moves:  %d\ntime:   %s\n", len(snap.History), snap.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	del := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a save",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, repo, err := a.openSaves()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}

func savesTable(saves []storage.SaveInfo) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "MOVES", "TIME", "SOLVED", "UPDATED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, s := range saves {
		t.Row(
			s.Name,
			fmt.Sprint(s.MoveCount),
			s.Elapsed.Round(time.Second).String(),
			fmt.Sprint(s.Solved),
			s.UpdatedAt.Local().Format(time.DateTime),
		)
	}
	return t.Render()
}
