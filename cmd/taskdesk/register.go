package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fullName, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("new-password")
		role, _ := cmd.Flags().GetString("role")

		a := newApp(cmd.Context())
		if err := finish(a.eng.Register(args[0], password, fullName, role)); err != nil {
			return err
		}
		fmt.Printf("Registered %s (%s)\n", args[0], fullName)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check credentials (--user/--password)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}
		role := "user"
		if sess.Admin {
			role = "admin"
		}
		fmt.Printf("Logged in as %s (%s, %s)\n", sess.Username, sess.FullName, role)
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "full name shown as assignee identity")
	registerCmd.Flags().String("new-password", "", "password for the new account")
	registerCmd.Flags().String("role", "user", "account role: user or admin")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("new-password")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
}
