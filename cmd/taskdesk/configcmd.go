package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdesk/pkg/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the remote store configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		fmt.Printf("Task spreadsheet:   %s (%s)\n", a.cfg.TaskSpreadsheetID, a.cfg.TaskSheetName)
		fmt.Printf("Login spreadsheet:  %s (%s)\n", a.cfg.LoginSpreadsheetID, a.cfg.LoginSheetName)
		fmt.Printf("Credentials file:   %s\n", a.cfg.CredentialsFile)
		if !a.cfg.Complete() {
			fmt.Println("Remote store is not fully configured.")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the configuration and re-run reconciliation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())

		// Admin gated once accounts exist; open on a fresh install so the
		// remote can be configured before the first registration.
		sess := model.Session{}
		if flagUser != "" {
			var err error
			if sess, err = a.session(); err != nil {
				return finish(err)
			}
		}

		cfg := *a.cfg
		set := func(flag string, dst *string) {
			if cmd.Flags().Changed(flag) {
				*dst, _ = cmd.Flags().GetString(flag)
			}
		}
		set("task-spreadsheet", &cfg.TaskSpreadsheetID)
		set("login-spreadsheet", &cfg.LoginSpreadsheetID)
		set("task-sheet", &cfg.TaskSheetName)
		set("login-sheet", &cfg.LoginSheetName)
		set("credentials", &cfg.CredentialsFile)

		if err := finish(a.eng.Reconfigure(sess, &cfg, a.cfgPath)); err != nil {
			return err
		}
		a.cfg = &cfg

		// Fresh full reconciliation against the new remote.
		if err := a.connect(cmd.Context()); err != nil {
			return finish(err)
		}
		if err := finish(a.eng.Sync()); err != nil {
			return err
		}
		fmt.Println("Configuration saved and reconciled.")
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a full pull/push reconciliation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		// newApp already synced on startup when the remote is reachable;
		// run once more explicitly so failures surface as errors here.
		if err := finish(a.eng.Sync()); err != nil {
			return err
		}
		fmt.Println("Reconciliation complete.")
		return nil
	},
}

func init() {
	configSetCmd.Flags().String("task-spreadsheet", "", "task spreadsheet id")
	configSetCmd.Flags().String("login-spreadsheet", "", "login spreadsheet id")
	configSetCmd.Flags().String("task-sheet", "", "task worksheet name")
	configSetCmd.Flags().String("login-sheet", "", "login worksheet name")
	configSetCmd.Flags().String("credentials", "", "service account credentials file")

	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(syncCmd)
}
