package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

func newDueCmd() *cobra.Command {
	var logAll bool

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List the habits due today",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Reload(cmd.Context(), domain.KindHabit); err != nil {
				return err
			}

			if logAll {
				logged := a.store.LogAllDue()
				a.flush()
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %d habit(s)\n", len(logged))
				if n := len(a.store.Divergences()); n > 0 {
					return fmt.Errorf("%d completion(s) were not saved remotely", n)
				}
			}

			printDue(cmd, a.store.HabitsDueToday(), domain.DateKey(a.store.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&logAll, "log", false, "mark every due habit as done today")
	return cmd
}

func printDue(cmd *cobra.Command, habits []domain.Habit, today string) {
	out := cmd.OutOrStdout()
	title := color.New(color.Bold, color.Underline)
	_, _ = title.Fprintf(out, "Due %s\n", today)

	if len(habits) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(out, " none")
		return
	}

	done := color.New(color.FgGreen)
	todo := color.New(color.FgYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, h := range habits {
		mark := todo.Sprint("[ ]")
		if h.CompletedByDate[today] {
			mark = done.Sprint("[x]")
		}
		tbl.AddRow(mark, h.Name, fmt.Sprintf("streak %d", h.Streak))
	}
	fmt.Fprintln(out, tbl)
}
