package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taskdesk/pkg/config"
	"taskdesk/pkg/engine"
	"taskdesk/pkg/google"
	"taskdesk/pkg/model"
	"taskdesk/pkg/store"
)

var (
	dataDir      string
	flagUser     string
	flagPassword string
)

var rootCmd = &cobra.Command{
	Use:   "taskdesk",
	Short: "Multi-user task tracker synced with Google Sheets",
	Long: `taskdesk keeps a local task tracker and a shared Google Sheets
spreadsheet convergent. Records live in JSON files next to the binary (or
under --data-dir) and are reconciled with the sheets on every run: remote
rows are pulled and merged, then local-only records are pushed back up.

Mutating commands authenticate with --user and --password; each invocation
is one session. Remote failures never lose local changes: the engine stays
ahead of the sheet until the next successful push.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "directory holding the local JSON documents")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "username to act as")
	rootCmd.PersistentFlags().StringVarP(&flagPassword, "password", "p", "", "password for --user")
}

// app wires the store, config, engine and (best-effort) the remote sheets
// for one command invocation.
type app struct {
	eng     *engine.Engine
	cfg     *config.Config
	cfgPath string
}

// newApp loads local state and, when the config is complete, connects the
// remote and runs the startup reconciliation. A remote that cannot be
// reached is reported and the engine continues locally.
func newApp(ctx context.Context) *app {
	cfgPath := filepath.Join(dataDir, config.ConfigFile)
	a := &app{
		eng:     engine.New(store.New(dataDir), nil),
		cfg:     config.Load(cfgPath),
		cfgPath: cfgPath,
	}

	if !a.cfg.Complete() {
		fmt.Fprintln(os.Stderr, "warning: remote store not configured; running locally (see 'taskdesk config set')")
		return a
	}
	if err := a.connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not reach Google Sheets: %v; running locally\n", err)
		return a
	}
	if err := a.eng.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: startup reconciliation failed: %v\n", err)
	}
	return a
}

func (a *app) connect(ctx context.Context) error {
	srv, err := google.NewService(ctx, a.cfg.CredentialsFile)
	if err != nil {
		return err
	}
	login, err := google.Open(ctx, srv, a.cfg.LoginSpreadsheetID, a.cfg.LoginSheetName, model.LoginHeader)
	if err != nil {
		return err
	}
	tasks, err := google.Open(ctx, srv, a.cfg.TaskSpreadsheetID, a.cfg.TaskSheetName, model.TaskHeader)
	if err != nil {
		return err
	}
	a.eng.SetRemote(login, tasks)
	return nil
}

// session authenticates the --user/--password flags.
func (a *app) session() (model.Session, error) {
	if flagUser == "" {
		return model.Session{}, fmt.Errorf("this command requires --user and --password")
	}
	return a.eng.Login(flagUser, flagPassword)
}

// finish renders a mutation result: a remote failure is a warning, not an
// error, because the local mutation has already been applied and kept.
func finish(err error) error {
	if err == nil {
		return nil
	}
	if engine.IsRemote(err) {
		fmt.Fprintf(os.Stderr, "warning: %v (change saved locally; next sync will retry)\n", err)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}

func printTasks(tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tASSIGNEE\tPROJECT\tSTATUS\tDEADLINE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Assignee, t.ProjectName, t.Status, t.Deadline)
	}
	w.Flush()
}
