package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	dateFlag  string
	groupFlag string
)

func init() {
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Set every identity to absent for a day",
		Args:  cobra.NoArgs,
		Run:   runReset,
	}
	resetCmd.Flags().StringVar(&dateFlag, "date", "", "Day to reset, YYYY-MM-DD (default: today)")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show every identity's attendance for a day",
		Args:  cobra.NoArgs,
		Run:   runStatus,
	}
	statusCmd.Flags().StringVar(&dateFlag, "date", "", "Day to show, YYYY-MM-DD (default: today)")
	statusCmd.Flags().StringVar(&groupFlag, "group", "", "Only identities of this group")

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "List today's attendance records",
		Args:  cobra.NoArgs,
		Run:   runToday,
	}

	historyCmd := &cobra.Command{
		Use:   "history <identity-id>",
		Short: "List an identity's records, newest first",
		Args:  cobra.ExactArgs(1),
		Run:   runHistory,
	}

	RootCmd.AddCommand(resetCmd, statusCmd, todayCmd, historyCmd)
}

func runReset(cmd *cobra.Command, args []string) {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	defer rt.Close()

	date, err := parseDate(rt, dateFlag)
	if err != nil {
		exitErr("parse --date", err)
	}
	count, err := rt.Registry.Attendance.ResetAll(cmd.Context(), date)
	if err != nil {
		exitErr("reset", err)
	}
	fmt.Printf("Reset attendance status for %d identities\n", count)
}

func runStatus(cmd *cobra.Command, args []string) {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	defer rt.Close()

	date, err := parseDate(rt, dateFlag)
	if err != nil {
		exitErr("parse --date", err)
	}
	resp, err := rt.Registry.Attendance.GetRosterStatus(cmd.Context(), date, groupFlag)
	if err != nil {
		exitErr("status", err)
	}
	printJSON(resp)
}

func runToday(cmd *cobra.Command, args []string) {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	defer rt.Close()

	resp, err := rt.Registry.Attendance.GetByDate(cmd.Context(), rt.Registry.Clock.Now())
	if err != nil {
		exitErr("today", err)
	}
	printJSON(resp)
}

func runHistory(cmd *cobra.Command, args []string) {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	defer rt.Close()

	resp, err := rt.Registry.Attendance.GetHistory(cmd.Context(), args[0])
	if err != nil {
		exitErr("history", err)
	}
	printJSON(resp)
}
