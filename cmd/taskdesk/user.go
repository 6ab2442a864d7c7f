package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}
		users, err := a.eng.ListUsers(sess)
		if err != nil {
			return finish(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tFULL NAME\tROLE")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.Username, u.FullName, u.Role)
		}
		w.Flush()
		return nil
	},
}

var usersRmCmd = &cobra.Command{
	Use:   "rm <username>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}
		if err := finish(a.eng.DeleteUser(sess, args[0])); err != nil {
			return err
		}
		fmt.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the audit ledger (admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}
		entries, err := a.eng.ListHistory(sess)
		if err != nil {
			return finish(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tACTION\tTASK ID\tTITLE\tUSER")
		for _, h := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", h.Timestamp, h.Action, h.TaskID, h.Title, h.User)
		}
		w.Flush()
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersRmCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(historyCmd)
}
