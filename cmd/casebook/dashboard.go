package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/casebook/internal/api"
	"github.com/fyrsmithlabs/casebook/internal/board"
	"github.com/fyrsmithlabs/casebook/internal/config"
	"github.com/fyrsmithlabs/casebook/internal/derive"
)

const (
	enquiryTrendMonths = 12
	dashboardTodoLimit = 5
	// exports older than this get a reminder on the dashboard
	exportReminderDays = 7
)

var dashboardPlain bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the practice dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()

		cases, err := client.ListCases(cmd.Context())
		if err != nil {
			return err
		}
		todos, err := client.ListTodos(cmd.Context())
		if err != nil {
			return err
		}

		stats := derive.Dashboard(cases, now)
		series := derive.MonthlyEnquiries(cases, now, enquiryTrendMonths)
		upcoming := derive.Upcoming(todos, now, dashboardTodoLimit)

		if dashboardPlain {
			printDashboard(stats, upcoming, now)
			return nil
		}

		model := board.NewDashboard(cfg.Practice.Name, stats, series, upcoming, now)
		_, err = tea.NewProgram(model).Run()
		return err
	},
}

func printDashboard(stats derive.Stats, upcoming []api.Todo, now time.Time) {
	fmt.Printf("%s\n\n", cfg.Practice.Name)
	fmt.Printf("Active cases:        %d (%d total)\n", stats.ActiveCases, stats.TotalCases)
	fmt.Printf("Upcoming sessions:   %d\n", stats.UpcomingSessions)
	fmt.Printf("Enquiries (month):   %d\n", stats.ThisMonthEnquiries)
	fmt.Printf("Outstanding:         £%s across %d cases\n",
		stats.OutstandingTotal.StringFixed(2), stats.UnpaidCount)

	if len(upcoming) > 0 {
		fmt.Println("\nNext to-dos:")
		for _, t := range upcoming {
			line := fmt.Sprintf("  %s  %s", t.DueDate.Format("2006-01-02"), t.Title)
			if derive.IsOverdue(t, now) {
				line += "  OVERDUE"
			}
			fmt.Println(line)
		}
	}

	if path, err := config.DefaultStatePath(); err == nil {
		if state, err := config.LoadState(path); err == nil {
			reportExportAge(state, now)
		}
	}
}

// reportExportAge warns when the last export is older than the reminder
// window. Informational only; export freshness is tracked client-side.
func reportExportAge(state *config.State, now time.Time) {
	days, ok := state.DaysSinceExport(now)
	if !ok {
		fmt.Println("\nNo export recorded yet. Run 'casebook export json' to back up your data.")
		return
	}
	if days >= exportReminderDays {
		fmt.Printf("\nLast export was %d days ago. Consider backing up.\n", days)
	}
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardPlain, "plain", false, "print stats without the interactive screen")
}
