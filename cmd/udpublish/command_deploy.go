package main

import (
	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy an existing component version",
	Long:  "Run an application process for a version that was published earlier. No version is created.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}
		cfg.SkipPublish = true
		cfg.Deploy = true
		return executeRun(cfg)
	},
}

func registerDeployCommand(root *cobra.Command) {
	root.AddCommand(deployCmd)

	bindRunFlags(deployCmd, false)
	deployCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the planned steps without contacting the server")
	deployCmd.Flags().StringVar(&summaryFile, "summary", "", "Write a JSON or YAML run summary to this file")
}
