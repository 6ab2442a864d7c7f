package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdesk/pkg/engine"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create, list, edit and delete tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}

		in := inputFromFlags(cmd)
		t, err := a.eng.CreateTask(sess, in)
		if err := finish(err); err != nil {
			return err
		}
		fmt.Printf("Created task %s: %s\n", t.ID, t.Title)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")
		mine, _ := cmd.Flags().GetBool("mine")
		query, _ := cmd.Flags().GetString("query")

		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}

		printTasks(a.eng.ListTasks(sess, engine.TaskFilter{
			Project: project,
			Mine:    mine,
			Query:   query,
		}))
		return nil
	},
}

var taskSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tasks by title or assignee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}
		printTasks(a.eng.SearchTasks(sess, args[0]))
		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task (flags left unset keep their current value)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}

		cur, ok := a.eng.GetTask(args[0])
		if !ok {
			return finish(fmt.Errorf("task %q not found", args[0]))
		}

		// A bare --status change goes through the status-only operation,
		// which assignees are allowed to use.
		if statusOnlyEdit(cmd) {
			status, _ := cmd.Flags().GetString("status")
			t, err := a.eng.UpdateTaskStatus(sess, args[0], status)
			if err := finish(err); err != nil {
				return err
			}
			fmt.Printf("Updated task %s: %s [%s]\n", t.ID, t.Title, t.Status)
			return nil
		}

		// Full edit: start from the current record so a partial set of
		// flags does not blank the rest.
		in := engine.TaskInput{
			Title:       cur.Title,
			Description: cur.Description,
			Assignee:    cur.Assignee,
			ProjectName: cur.ProjectName,
			Status:      cur.Status,
			Deadline:    cur.Deadline,
			Notes:       cur.Notes,
		}
		overlayFlags(cmd, &in)

		t, err := a.eng.UpdateTask(sess, args[0], in)
		if err := finish(err); err != nil {
			return err
		}
		fmt.Printf("Updated task %s: %s [%s]\n", t.ID, t.Title, t.Status)
		return nil
	},
}

var taskProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the distinct project names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		for _, p := range a.eng.Projects() {
			fmt.Println(p)
		}
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		sess, err := a.session()
		if err != nil {
			return finish(err)
		}
		if err := finish(a.eng.DeleteTask(sess, args[0])); err != nil {
			return err
		}
		fmt.Printf("Deleted task %s\n", args[0])
		return nil
	},
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "task title")
	cmd.Flags().String("description", "", "task description")
	cmd.Flags().String("assignee", "", "assignee full name (must be a registered user)")
	cmd.Flags().String("project", "", "project name")
	cmd.Flags().String("status", "", "Todo, In Progress or Done")
	cmd.Flags().String("deadline", "", "deadline (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().String("notes", "", "free-text notes")
}

func inputFromFlags(cmd *cobra.Command) engine.TaskInput {
	var in engine.TaskInput
	in.Title, _ = cmd.Flags().GetString("title")
	in.Description, _ = cmd.Flags().GetString("description")
	in.Assignee, _ = cmd.Flags().GetString("assignee")
	in.ProjectName, _ = cmd.Flags().GetString("project")
	in.Status, _ = cmd.Flags().GetString("status")
	in.Deadline, _ = cmd.Flags().GetString("deadline")
	in.Notes, _ = cmd.Flags().GetString("notes")
	return in
}

// statusOnlyEdit reports whether --status is the only edit flag given.
func statusOnlyEdit(cmd *cobra.Command) bool {
	if !cmd.Flags().Changed("status") {
		return false
	}
	for _, name := range []string{"title", "description", "assignee", "project", "deadline", "notes"} {
		if cmd.Flags().Changed(name) {
			return false
		}
	}
	return true
}

func overlayFlags(cmd *cobra.Command, in *engine.TaskInput) {
	set := func(flag string, dst *string) {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	set("title", &in.Title)
	set("description", &in.Description)
	set("assignee", &in.Assignee)
	set("project", &in.ProjectName)
	set("status", &in.Status)
	set("deadline", &in.Deadline)
	set("notes", &in.Notes)
}

func init() {
	addEditFlags(taskAddCmd)
	taskAddCmd.MarkFlagRequired("title")
	taskAddCmd.MarkFlagRequired("assignee")
	taskAddCmd.MarkFlagRequired("project")

	addEditFlags(taskEditCmd)

	taskListCmd.Flags().String("project", "", "only tasks in this project")
	taskListCmd.Flags().Bool("mine", false, "only tasks assigned to me")
	taskListCmd.Flags().String("query", "", "substring match on title or assignee")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskSearchCmd, taskEditCmd, taskRmCmd, taskProjectsCmd)
	rootCmd.AddCommand(taskCmd)
}
