package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/writespace/writespace/internal/jobs"
)

func init() {
	rootCmd.AddCommand(sweepCmd())
}

func sweepCmd() *cobra.Command {
	var watch bool
	var window time.Duration

	command := &cobra.Command{
		Use:   "sweep",
		Short: "remove orphaned media references",
		Long: `Remove orphaned media references.

Scans recently updated articles and deletes tracked media that no article
body or featured image refers to anymore. With --watch the sweep keeps
running on a schedule until interrupted.`,
		Run: func(cmd *cobra.Command, args []string) {
			app := buildEnv()
			sweeper := jobs.NewOrphanSweeper(app.store, app.reconciler, window)

			if !watch {
				sweeper.Run()
				return
			}

			runner := jobs.NewRunner(sweeper)
			runner.Start()
			logrus.Info("orphan sweeper running, press ctrl+c to stop")

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			runner.Stop()
		},
	}

	command.Flags().BoolVarP(&watch, "watch", "w", false, "keep sweeping on a schedule")
	command.Flags().DurationVar(&window, "window", time.Hour, "how far back to look for updated articles")
	command.Flags().SortFlags = false

	return command
}
