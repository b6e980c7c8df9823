package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finfacil/internal/cli"
	"finfacil/internal/models"
	"finfacil/internal/pagination"
	"finfacil/internal/services"
)

var (
	flagGoalType   string
	flagGoalStatus string
	flagGoalActive bool
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List goals with their progress",
	RunE:  runGoals,
}

func init() {
	goalsCmd.Flags().StringVarP(&flagGoalType, "type", "t", "", "Filter by goal type")
	goalsCmd.Flags().StringVarP(&flagGoalStatus, "status", "s", "", "Filter by status")
	goalsCmd.Flags().BoolVar(&flagGoalActive, "active", false, "Only in-progress and at-risk goals")
	rootCmd.AddCommand(goalsCmd)
}

func goalFilter() (services.GoalFilter, error) {
	filter := services.GoalFilter{Active: flagGoalActive}
	if flagGoalType != "" {
		t := models.GoalType(flagGoalType)
		if !t.Valid() {
			return filter, fmt.Errorf("unknown goal type %q", flagGoalType)
		}
		filter.Type = &t
	}
	if flagGoalStatus != "" {
		s := models.GoalStatus(flagGoalStatus)
		if !s.Valid() {
			return filter, fmt.Errorf("unknown goal status %q", flagGoalStatus)
		}
		filter.Status = &s
	}
	return filter, nil
}

func runGoals(cmd *cobra.Command, _ []string) error {
	filter, err := goalFilter()
	if err != nil {
		return err
	}

	a, closeFn, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	var goals []models.Goal
	for page := 1; ; page++ {
		resp, err := a.GoalService.GetGoals(pagination.PageRequest{Page: page, PageSize: 100}, filter)
		if err != nil {
			return err
		}
		goals = append(goals, resp.Data...)
		if page >= resp.TotalPages {
			break
		}
	}

	if len(goals) == 0 {
		fmt.Println("\n  No goals found.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GOALS  %d total", len(goals))))
	fmt.Println()

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		p, err := a.GoalService.GetProgress(g.ID)
		if err != nil {
			return err
		}
		pacing := string(p.Pacing)
		if p.Overdue {
			pacing = "overdue"
		}
		rows = append(rows, []string{
			cli.Truncate(g.Name, 24),
			g.ID,
			string(g.Type),
			cli.RenderState(string(g.Status)),
			cli.FormatMoney(g.CurrentAmount),
			cli.FormatMoney(g.TargetAmount),
			cli.FormatPercent(p.Percentage),
			cli.RenderState(pacing),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "ID", "Type", "Status", "Balance", "Target", "Progress", "Pacing"},
		Rows:    rows,
	}))
	return nil
}
