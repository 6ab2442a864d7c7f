package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show tasks due within the next 24 hours",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		tasks := a.eng.DueSoon(time.Now())
		if len(tasks) == 0 {
			fmt.Println("Nothing due in the next 24 hours.")
			return nil
		}
		for _, t := range tasks {
			fmt.Printf("%s is due soon: %s (%s)\n", t.Title, t.Deadline, t.Assignee)
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how much of the tracked work is done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		done, total := a.eng.Progress()
		if total == 0 {
			fmt.Println("No tasks yet.")
			return nil
		}
		fmt.Printf("%d of %d tasks done (%.1f%%)\n", done, total, float64(done)/float64(total)*100)
		return nil
	},
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Import a few sample tasks (admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}
		tasks, err := a.eng.ImportSampleTasks(sess)
		if err != nil {
			return finish(err)
		}
		fmt.Printf("Imported %d sample task(s)\n", len(tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dueCmd, progressCmd, samplesCmd)
}
