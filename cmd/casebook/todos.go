package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/casebook/internal/api"
	"github.com/fyrsmithlabs/casebook/internal/derive"
)

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "Manage case to-dos",
}

var todosShowAll bool

var todosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List to-dos, overdue first",
	RunE: func(cmd *cobra.Command, args []string) error {
		todos, err := client.ListTodos(cmd.Context())
		if err != nil {
			return err
		}

		now := time.Now()
		if !todosShowAll {
			todos = derive.Pending(todos)
		}
		sorted := derive.SortTodos(todos, now)
		overdue := derive.Overdue(todos, now)

		fmt.Printf("%d to-dos", len(sorted))
		if len(overdue) > 0 {
			fmt.Printf(", %d overdue", len(overdue))
		}
		fmt.Println()

		for _, t := range sorted {
			mark := "[ ]"
			if t.IsCompleted {
				mark = "[x]"
			}
			due := "no due date"
			if t.DueDate != nil && !t.DueDate.IsZero() {
				due = t.DueDate.Format("2006-01-02")
			}
			line := fmt.Sprintf("%s %s  %s  (%s)", mark, due, t.Title, t.CaseReference)
			if derive.IsOverdue(t, now) {
				line += "  OVERDUE"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var (
	todoTitle       string
	todoDescription string
	todoDue         string
)

var todosAddCmd = &cobra.Command{
	Use:   "add <case-id>",
	Short: "Add a to-do to a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := client.CreateTodo(cmd.Context(), &api.CreateTodoRequest{
			Title:       todoTitle,
			Description: todoDescription,
			DueDate:     todoDue,
			Case:        args[0],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added to-do %s\n", t.ID)
		return nil
	},
}

var (
	editTitle       string
	editDescription string
	editDue         string
)

var todosEditCmd = &cobra.Command{
	Use:   "edit <todo-id>",
	Short: "Edit a to-do's title, details, or due date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &api.PatchTodoRequest{}
		if cmd.Flags().Changed("title") {
			req.Title = &editTitle
		}
		if cmd.Flags().Changed("description") {
			req.Description = &editDescription
		}
		if cmd.Flags().Changed("due") {
			req.DueDate = &editDue
		}
		if req.Title == nil && req.Description == nil && req.DueDate == nil {
			return fmt.Errorf("nothing to change: pass --title, --description, or --due")
		}

		t, err := client.PatchTodo(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated to-do %s\n", t.ID)
		return nil
	},
}

var todosDoneCmd = &cobra.Command{
	Use:   "done <todo-id>",
	Short: "Toggle a to-do's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ToggleTodoComplete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Toggled to-do %s\n", args[0])
		return nil
	},
}

var todosRmCmd = &cobra.Command{
	Use:   "rm <todo-id>",
	Short: "Delete a to-do",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteTodo(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted to-do %s\n", args[0])
		return nil
	},
}

func init() {
	todosListCmd.Flags().BoolVar(&todosShowAll, "all", false, "include completed to-dos")

	flags := todosAddCmd.Flags()
	flags.StringVar(&todoTitle, "title", "", "to-do title (required)")
	flags.StringVar(&todoDescription, "description", "", "details")
	flags.StringVar(&todoDue, "due", "", "due date (YYYY-MM-DD)")
	_ = todosAddCmd.MarkFlagRequired("title")

	editFlags := todosEditCmd.Flags()
	editFlags.StringVar(&editTitle, "title", "", "new title")
	editFlags.StringVar(&editDescription, "description", "", "new details")
	editFlags.StringVar(&editDue, "due", "", "new due date (YYYY-MM-DD)")

	todosCmd.AddCommand(todosListCmd)
	todosCmd.AddCommand(todosAddCmd)
	todosCmd.AddCommand(todosEditCmd)
	todosCmd.AddCommand(todosDoneCmd)
	todosCmd.AddCommand(todosRmCmd)
}
