package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/config/db"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().Bool("all", false, "Print consistent projects too")
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Replay every project ledger and report drift",
	Long: `Replays the hour ledger of every project and compares the result with
the cached used hours. Exits non-zero when any project is out of balance.`,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	showAll, _ := cmd.Flags().GetBool("all")
	config.LoadConfig()

	gdb, err := db.Open(config.DSN())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	ledger := application.NewHourService(repository.NewRepositories(gdb))
	recs, err := ledger.ReconcileAll(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tCACHED\tREPLAYED\tENTRIES\tSTATUS")
	drift := 0
	for _, r := range recs {
		status := "ok"
		if !r.Consistent {
			drift++
			status = "DRIFT"
			if r.BrokenChainAt != nil {
				status = "BROKEN CHAIN at " + r.BrokenChainAt.String()
			}
		} else if !showAll {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", r.ProjectCode, r.CachedUsed, r.ReplayedUsed, r.Transactions, status)
	}
	_ = w.Flush()

	if drift > 0 {
		return fmt.Errorf("%d of %d projects out of balance", drift, len(recs))
	}
	fmt.Fprintf(os.Stdout, "%d projects consistent\n", len(recs))
	return nil
}
