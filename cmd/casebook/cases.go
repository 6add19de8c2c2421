package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Manage mediation cases",
}

var casesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cases, err := client.ListCases(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "REFERENCE\tTITLE\tSTATUS\tPARTIES\tOUTSTANDING\tSESSIONS")
		for i := range cases {
			c := &cases[i]
			parties := c.Party1Name
			if c.Party2Name != "" {
				parties += " / " + c.Party2Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t£%s\t%d\n",
				c.Reference, c.Title, c.Status, parties,
				c.Outstanding().StringFixed(2), len(c.Sessions))
		}
		return w.Flush()
	},
}

var casesShowCmd = &cobra.Command{
	Use:   "show <case-id>",
	Short: "Show one case in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.GetCase(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s  [%s]\n", c.Reference, c.Title, c.Status)
		if c.Party1Name != "" {
			fmt.Printf("Party 1: %s  %s  %s\n", c.Party1Name, c.Party1Email, c.Party1Phone)
		}
		if c.Party2Name != "" {
			fmt.Printf("Party 2: %s  %s  %s\n", c.Party2Name, c.Party2Email, c.Party2Phone)
		}
		if !c.EnquiryDate.IsZero() {
			fmt.Printf("Enquiry date: %s\n", c.EnquiryDate.Format("2006-01-02"))
		}
		fmt.Printf("Voucher used: %v\n", c.VoucherUsed)
		fmt.Printf("Owed £%s, paid £%s, outstanding £%s\n",
			c.AmountOwed.StringFixed(2), c.AmountPaid.StringFixed(2), c.Outstanding().StringFixed(2))
		if c.PaymentNotes != "" {
			fmt.Printf("Payment notes: %s\n", c.PaymentNotes)
		}
		if c.InternalNotes != "" {
			fmt.Printf("Internal notes: %s\n", c.InternalNotes)
		}
		if len(c.Sessions) > 0 {
			fmt.Printf("\nSessions:\n")
			for _, s := range c.Sessions {
				fmt.Printf("  %s  %s  %s → %s\n", s.ID, s.SessionType,
					s.Start.Local().Format("2006-01-02 15:04"), s.End.Local().Format("15:04"))
			}
		}
		return nil
	},
}

var newCase api.CreateCaseRequest

var casesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new case",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.CreateCase(cmd.Context(), &newCase)
		if err != nil {
			return err
		}
		fmt.Printf("Created case %s (%s)\n", c.Reference, c.ID)
		return nil
	},
}

var casesStatusCmd = &cobra.Command{
	Use:   "status <case-id> <ENQUIRY|MIAM|OPEN|PAUSED|CLOSED>",
	Short: "Overwrite a case's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := api.CaseStatus(args[1])
		if !status.Known() {
			return fmt.Errorf("unknown status %q", args[1])
		}
		if err := client.UpdateCaseStatus(cmd.Context(), args[0], status); err != nil {
			return err
		}
		fmt.Printf("Case %s moved to %s\n", args[0], status)
		return nil
	},
}

var (
	payOwed  string
	payPaid  string
	payNotes string
)

var casesPaymentCmd = &cobra.Command{
	Use:   "payment <case-id>",
	Short: "Update a case's payment tracking",
	Long: `Overwrite the amounts owed and paid on a case. The paid amount may
not exceed the owed amount.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owed, err := decimal.NewFromString(payOwed)
		if err != nil {
			return fmt.Errorf("invalid --owed: %w", err)
		}
		paid, err := decimal.NewFromString(payPaid)
		if err != nil {
			return fmt.Errorf("invalid --paid: %w", err)
		}

		c, err := client.UpdatePayment(cmd.Context(), args[0], owed, paid, payNotes)
		if err != nil {
			return err
		}
		fmt.Printf("Case %s: owed £%s, paid £%s, outstanding £%s\n",
			c.Reference, c.AmountOwed.StringFixed(2), c.AmountPaid.StringFixed(2),
			c.Outstanding().StringFixed(2))
		return nil
	},
}

var casesDeleteCmd = &cobra.Command{
	Use:   "delete <case-id>",
	Short: "Delete a case and its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteCase(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted case %s\n", args[0])
		return nil
	},
}

func init() {
	flags := casesCreateCmd.Flags()
	flags.StringVar(&newCase.Reference, "reference", "", "unique case reference (required)")
	flags.StringVar(&newCase.Title, "title", "", "case title (required)")
	flags.StringVar((*string)(&newCase.Status), "status", string(api.StatusEnquiry), "initial status")
	flags.StringVar(&newCase.Party1Name, "party1-name", "", "first party name")
	flags.StringVar(&newCase.Party1Email, "party1-email", "", "first party email")
	flags.StringVar(&newCase.Party1Phone, "party1-phone", "", "first party phone")
	flags.StringVar(&newCase.Party2Name, "party2-name", "", "second party name")
	flags.StringVar(&newCase.Party2Email, "party2-email", "", "second party email")
	flags.StringVar(&newCase.Party2Phone, "party2-phone", "", "second party phone")
	flags.StringVar(&newCase.EnquiryDate, "enquiry-date", "", "enquiry date (YYYY-MM-DD)")
	flags.BoolVar(&newCase.VoucherUsed, "voucher", false, "mediation voucher used")
	_ = casesCreateCmd.MarkFlagRequired("reference")
	_ = casesCreateCmd.MarkFlagRequired("title")

	payFlags := casesPaymentCmd.Flags()
	payFlags.StringVar(&payOwed, "owed", "", "total amount owed, e.g. 300.00 (required)")
	payFlags.StringVar(&payPaid, "paid", "", "total amount paid so far (required)")
	payFlags.StringVar(&payNotes, "notes", "", "payment notes")
	_ = casesPaymentCmd.MarkFlagRequired("owed")
	_ = casesPaymentCmd.MarkFlagRequired("paid")

	casesCmd.AddCommand(casesListCmd)
	casesCmd.AddCommand(casesShowCmd)
	casesCmd.AddCommand(casesCreateCmd)
	casesCmd.AddCommand(casesStatusCmd)
	casesCmd.AddCommand(casesPaymentCmd)
	casesCmd.AddCommand(casesDeleteCmd)
}
