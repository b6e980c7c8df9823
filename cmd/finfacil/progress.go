package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"finfacil/internal/cli"
	"finfacil/internal/pagination"
)

var progressCmd = &cobra.Command{
	Use:   "progress <goal-id>",
	Short: "Show the ledger and pacing of one goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	a, closeFn, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	goalID := args[0]
	goal, err := a.GoalService.GetGoalByID(goalID)
	if err != nil {
		return err
	}
	p, err := a.GoalService.GetProgress(goalID)
	if err != nil {
		return err
	}
	summary := a.GoalService.Summarize(goalID)

	fmt.Println()
	fmt.Println(cli.RenderTitle(goal.Name))
	fmt.Println()
	fmt.Println(cli.RenderField("Progress", cli.RenderProgressBar(p.Percentage, 30)))
	fmt.Println(cli.RenderField("Status", cli.RenderState(string(goal.Status))))
	fmt.Println(cli.RenderField("Pacing", cli.RenderState(string(p.Pacing))))
	if p.Overdue {
		fmt.Println(cli.RenderField("Overdue", cli.RenderState("overdue")))
	}
	fmt.Println(cli.RenderField("Window", goal.StartDate.String()+" → "+goal.TargetDate.String()))
	fmt.Println(cli.RenderField("Balance", cli.FormatMoney(summary.Balance)+" of "+cli.FormatMoney(goal.TargetAmount)))
	fmt.Println(cli.RenderField("Money in / out", cli.FormatMoney(summary.MoneyIn)+" / "+cli.FormatMoney(summary.MoneyOut)))
	fmt.Println(cli.RenderField("Remaining", cli.FormatMoney(p.RemainingAmount)))
	fmt.Println(cli.RenderField("Days remaining", strconv.Itoa(p.DaysRemaining)))
	fmt.Println(cli.RenderField("Daily / weekly", cli.FormatMoney(p.DailyTarget)+" / "+cli.FormatMoney(p.WeeklyTarget)))
	fmt.Println(cli.RenderField("Monthly", cli.FormatMoney(p.MonthlyTarget)))
	fmt.Println(cli.RenderField("Expected", cli.FormatPercent(p.ExpectedPercentage)))
	fmt.Println(cli.RenderField("Projected finish", cli.FormatDate(p.ProjectedCompletionDate)))
	fmt.Println()

	entries, err := a.GoalService.GetGoalEntries(goalID, pagination.PageRequest{Page: 1, PageSize: 100})
	if err != nil {
		return err
	}
	if len(entries.Data) == 0 {
		fmt.Println("  No entries yet.")
		return nil
	}

	rows := make([][]string, 0, len(entries.Data))
	for _, e := range entries.Data {
		date := e.Date
		rows = append(rows, []string{
			cli.FormatDate(&date),
			cli.Truncate(e.Description, 28),
			string(e.Type),
			cli.FormatMoney(e.Amount),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Entries (%d)", summary.EntryCount),
		Headers: []string{"Date", "Description", "Type", "Amount"},
		Rows:    rows,
	}))
	return nil
}
