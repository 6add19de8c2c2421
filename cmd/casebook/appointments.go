package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/casebook/internal/api"
	"github.com/fyrsmithlabs/casebook/internal/export"
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appts"},
	Short:   "Manage calendar appointments",
}

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments",
	RunE: func(cmd *cobra.Command, args []string) error {
		appts, err := client.ListAppointments(cmd.Context())
		if err != nil {
			return err
		}
		for _, a := range appts {
			line := fmt.Sprintf("%s  %s → %s  %s", a.ID,
				a.Start.Local().Format("2006-01-02 15:04"), a.End.Local().Format("15:04"), a.Title)
			if a.Location != "" {
				line += "  @ " + a.Location
			}
			if a.CaseReference != "" {
				line += "  (" + a.CaseReference + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var (
	apptTitle       string
	apptDescription string
	apptStart       string
	apptEnd         string
	apptLocation    string
	apptCase        string
	apptGcal        bool
)

var appointmentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an appointment",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.ParseInLocation("2006-01-02 15:04", apptStart, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		end, err := time.ParseInLocation("2006-01-02 15:04", apptEnd, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}

		a, err := client.CreateAppointment(cmd.Context(), &api.CreateAppointmentRequest{
			Title:       apptTitle,
			Description: apptDescription,
			Start:       start,
			End:         end,
			Location:    apptLocation,
			Case:        apptCase,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created appointment %s\n", a.ID)
		if apptGcal {
			fmt.Printf("Add to Google Calendar: %s\n", export.GoogleCalendarLink(a))
		}
		return nil
	},
}

func init() {
	flags := appointmentsAddCmd.Flags()
	flags.StringVar(&apptTitle, "title", "", "appointment title (required)")
	flags.StringVar(&apptDescription, "description", "", "details")
	flags.StringVar(&apptStart, "start", "", "start (YYYY-MM-DD HH:MM, required)")
	flags.StringVar(&apptEnd, "end", "", "end (YYYY-MM-DD HH:MM, required)")
	flags.StringVar(&apptLocation, "location", "", "location")
	flags.StringVar(&apptCase, "case", "", "linked case id")
	flags.BoolVar(&apptGcal, "gcal", false, "print a Google Calendar add-event link")
	_ = appointmentsAddCmd.MarkFlagRequired("title")
	_ = appointmentsAddCmd.MarkFlagRequired("start")
	_ = appointmentsAddCmd.MarkFlagRequired("end")

	appointmentsCmd.AddCommand(appointmentsListCmd)
	appointmentsCmd.AddCommand(appointmentsAddCmd)
}
