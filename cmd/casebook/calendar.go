package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/casebook/internal/derive"
)

var calendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the month calendar of sessions and appointments",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		year, month := now.Year(), now.Month()
		if calendarMonth != "" {
			parsed, err := time.Parse("2006-01", calendarMonth)
			if err != nil {
				return fmt.Errorf("invalid --month (want YYYY-MM): %w", err)
			}
			year, month = parsed.Year(), parsed.Month()
		}

		sessions, err := client.ListSessions(cmd.Context())
		if err != nil {
			return err
		}
		appts, err := client.ListAppointments(cmd.Context())
		if err != nil {
			return err
		}
		logger.Debug("calendar fetched",
			zap.Int("sessions", len(sessions)),
			zap.Int("appointments", len(appts)))

		events := append(derive.FromSessions(sessions), derive.FromAppointments(appts)...)
		grid := derive.MonthGrid(events, year, month, time.Local)

		fmt.Printf("%s %d\n\n", month, year)
		for _, day := range grid.Days {
			if len(day.Events) == 0 {
				continue
			}
			fmt.Printf("%s\n", day.Date.Format("Mon 02 Jan"))
			for _, e := range day.Visible() {
				line := fmt.Sprintf("  %s  %s", e.Start.Local().Format("15:04"), e.Title)
				if e.Location != "" {
					line += "  @ " + e.Location
				}
				fmt.Println(line)
			}
			if overflow := day.Overflow(); overflow > 0 {
				fmt.Printf("  +%d more\n", overflow)
			}
		}
		return nil
	},
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "month to display (YYYY-MM, default current)")
}
