package main

import (
	"fmt"
	"os"

	"github.com/sourceplane/udpublish/internal/config"
	"github.com/sourceplane/udpublish/internal/executor"
	"github.com/sourceplane/udpublish/internal/model"
	"github.com/sourceplane/udpublish/internal/render"
	"github.com/sourceplane/udpublish/internal/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Publish a component version and optionally deploy it",
	Long:  "Run the full pipeline from a run file and/or flags: maintenance guard, publish, properties, link and deploy.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}
		return executeRun(cfg)
	},
}

func registerRunCommand(root *cobra.Command) {
	root.AddCommand(runCmd)

	bindRunFlags(runCmd, true)
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the planned steps without contacting the server")
	runCmd.Flags().StringVar(&summaryFile, "summary", "", "Write a JSON or YAML run summary to this file")
}

func executeRun(cfg model.RunConfig) error {
	store, err := config.Load(sitesFile)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println("□ Dry-run mode enabled. No server calls will be made.")
	}

	ctx, cancel := signalContext()
	defer cancel()

	r := runner.NewRunner(store, runner.NewUCDClient, executor.NewLocal("local"), os.Stdout, os.Stderr, dryRun)
	summary, runErr := r.Run(ctx, cfg)

	if summaryFile != "" {
		if err := render.WriteSummary(summary, summaryFile); err != nil {
			if runErr != nil {
				return fmt.Errorf("%w (and %v)", runErr, err)
			}
			return err
		}
		fmt.Printf("✓ Summary saved to: %s\n", summaryFile)
	}
	if runErr != nil {
		return runErr
	}

	if dryRun {
		fmt.Println("✓ Dry-run complete")
	} else {
		fmt.Println("✓ Run complete")
	}
	return nil
}
