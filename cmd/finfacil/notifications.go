package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finfacil/internal/cli"
	"finfacil/internal/pagination"
)

var flagUnread bool

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications, newest first",
	RunE:  runNotifications,
}

func init() {
	notificationsCmd.Flags().BoolVarP(&flagUnread, "unread", "u", false, "Only unread notifications")
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, _ []string) error {
	a, closeFn, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := a.NotificationService.GetNotifications(pagination.PageRequest{Page: 1, PageSize: 100}, flagUnread)
	if err != nil {
		return err
	}
	stats := a.NotificationService.GetStats()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("NOTIFICATIONS  %d unread of %d", stats.Unread, stats.Total)))
	fmt.Println()

	if len(resp.Data) == 0 {
		fmt.Println("  Nothing to show.")
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(resp.Data))
	for _, n := range resp.Data {
		marker := " "
		if !n.Read {
			marker = "•"
		}
		rows = append(rows, []string{
			marker + " " + cli.Truncate(n.Title, 32),
			string(n.Type),
			cli.RenderState(string(n.Priority)),
			cli.FormatAge(n.CreatedAt, now),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Title", "Type", "Priority", "Age"},
		Rows:    rows,
	}))
	return nil
}
