package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/casebook/internal/api"
	"github.com/fyrsmithlabs/casebook/internal/miam"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Book and complete case sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := client.ListSessions(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range sessions {
			marker := " "
			if miam.HasSummary(s.Notes) {
				marker = "*"
			}
			fmt.Printf("%s %s  %-5s  %s → %s  case %s\n", marker, s.ID, s.SessionType,
				s.Start.Local().Format("2006-01-02 15:04"), s.End.Local().Format("15:04"), s.Case)
		}
		return nil
	},
}

var (
	bookType        string
	bookDate        string
	bookTime        string
	bookDuration    float64
	bookParticipant string
	bookNotes       string
)

var sessionsBookCmd = &cobra.Command{
	Use:   "book <case-id>",
	Short: "Book a session for a case",
	Long: `Book a MIAM or joint session. A MIAM booked with --participant gets a
stub note recording who the intake is for; the full summary is attached
later with "sessions complete".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.ParseInLocation("2006-01-02 15:04", bookDate+" "+bookTime, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date/time: %w", err)
		}
		end := start.Add(time.Duration(bookDuration * float64(time.Hour)))

		notes := bookNotes
		if bookParticipant != "" && api.SessionType(bookType) == api.SessionMIAM {
			notes = "Participant: " + bookParticipant
		}

		s, err := client.CreateSession(cmd.Context(), &api.CreateSessionRequest{
			Case:        args[0],
			SessionType: api.SessionType(bookType),
			Start:       start,
			End:         end,
			Notes:       notes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Booked %s session %s at %s\n", s.SessionType, s.ID, s.Start.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session, decoding any MIAM summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := client.ListSessions(cmd.Context())
		if err != nil {
			return err
		}
		for i := range sessions {
			if sessions[i].ID == args[0] {
				printSession(&sessions[i])
				return nil
			}
		}
		return fmt.Errorf("session %s: %w", args[0], api.ErrNotFound)
	},
}

// printSession shows the decoded summary when one is embedded, otherwise
// the raw notes. A decode failure is never fatal: raw text is the
// fallback.
func printSession(s *api.Session) {
	fmt.Printf("%s  %s  %s → %s  case %s\n", s.ID, s.SessionType,
		s.Start.Local().Format("2006-01-02 15:04"), s.End.Local().Format("15:04"), s.Case)

	summary, ok := miam.Decode(s.Notes)
	if !ok {
		if name, found := miam.Participant(s.Notes); found {
			fmt.Printf("Participant: %s (intake not completed)\n", name)
		} else if s.Notes != "" {
			fmt.Printf("Notes: %s\n", s.Notes)
		}
		return
	}

	fmt.Printf("\nMIAM Summary\n")
	fmt.Printf("  Participant: %s", summary.Participant)
	if age, ok := summary.ParticipantAge(s.Start); ok {
		fmt.Printf(" (age %d)", age)
	}
	fmt.Println()
	if summary.GeneralNotes != "" {
		fmt.Printf("  Notes: %s\n", summary.GeneralNotes)
	}
	rel := summary.Relationship
	fmt.Printf("  Relationship: married=%v separated=%v conditional_order=%v final_order=%v\n",
		rel.Married, rel.Separated, rel.ConditionalOrder, rel.FinalOrder)
	for _, child := range summary.Children {
		if age, ok := child.Age(s.Start); ok {
			fmt.Printf("  Child: %s (age %d)\n", child.Name, age)
		} else {
			fmt.Printf("  Child: %s\n", child.Name)
		}
	}
	if summary.Wishes.ChildArrangements != "" {
		fmt.Printf("  Child arrangement wishes: %s\n", summary.Wishes.ChildArrangements)
	}
	if summary.Wishes.Finances != "" {
		fmt.Printf("  Financial wishes: %s\n", summary.Wishes.Finances)
	}
	if trailing := miam.TrailingNotes(s.Notes); trailing != "" {
		fmt.Printf("  Other information: %s\n", trailing)
	}
}

var (
	completeSummaryFile string
	completeNotes       string
)

var sessionsCompleteCmd = &cobra.Command{
	Use:   "complete <session-id>",
	Short: "Attach a MIAM summary to a booked session",
	Long: `Attach the intake summary to a session. The summary is read from a JSON
file and replaces the session's notes in full; any previous summary is
overwritten, not merged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(completeSummaryFile)
		if err != nil {
			return fmt.Errorf("read summary file: %w", err)
		}
		var summary miam.Summary
		if err := json.Unmarshal(content, &summary); err != nil {
			return fmt.Errorf("parse summary file %s: %w", completeSummaryFile, err)
		}
		if summary.Participant == "" {
			return fmt.Errorf("summary is missing the participant name")
		}

		notes, err := miam.Encode(&summary, completeNotes)
		if err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}

		completed := true
		if _, err := client.PatchSession(cmd.Context(), args[0], &api.PatchSessionRequest{
			Notes:       &notes,
			IsCompleted: &completed,
		}); err != nil {
			return err
		}
		fmt.Printf("Summary saved to session %s\n", args[0])
		return nil
	},
}

func init() {
	flags := sessionsBookCmd.Flags()
	flags.StringVar(&bookType, "type", string(api.SessionMIAM), "session type: MIAM or JOINT")
	flags.StringVar(&bookDate, "date", time.Now().Format("2006-01-02"), "session date (YYYY-MM-DD)")
	flags.StringVar(&bookTime, "time", "09:00", "start time (HH:MM)")
	flags.Float64Var(&bookDuration, "duration", 1, "duration in hours")
	flags.StringVar(&bookParticipant, "participant", "", "MIAM participant name")
	flags.StringVar(&bookNotes, "notes", "", "free-text notes")

	completeFlags := sessionsCompleteCmd.Flags()
	completeFlags.StringVar(&completeSummaryFile, "summary", "", "path to summary JSON file (required)")
	completeFlags.StringVar(&completeNotes, "notes", "", "additional free-text notes")
	_ = sessionsCompleteCmd.MarkFlagRequired("summary")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsBookCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsCompleteCmd)
}
