package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/casebook/internal/board"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive progress board",
	Long: `Open the kanban progress board. Moving a case between columns
overwrites its status on the backend; a failed update is rolled back so
the board never drifts from the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cases, err := client.ListCases(cmd.Context())
		if err != nil {
			return err
		}
		model := board.NewKanban(cases, client, cfg.API.Timeout.Duration())
		_, err = tea.NewProgram(model).Run()
		return err
	},
}
