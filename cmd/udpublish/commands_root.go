package main

import (
	goflag "flag"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	sitesFile   string
	runFile     string
	dryRun      bool
	summaryFile string
)

var rootCmd = &cobra.Command{
	Use:   "udpublish",
	Short: "Publish build artifacts as component versions and deploy them",
	Long: "udpublish creates a component version on a release-automation server, uploads the build's " +
		"artifacts into it, stamps version properties and a CI link, and optionally runs an application " +
		"process and waits for the deployment to finish.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog complains when flag.Parse was never called
		return goflag.CommandLine.Parse([]string{})
	},
}

func init() {
	_ = goflag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	rootCmd.PersistentFlags().StringVar(&sitesFile, "sites", defaultSitesFile(), "Site registry file")

	registerRunCommand(rootCmd)
	registerDeployCommand(rootCmd)
	registerPlanCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerSitesCommand(rootCmd)
}

func defaultSitesFile() string {
	if env := os.Getenv("UDPUBLISH_SITES"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sites.yaml"
	}
	return filepath.Join(home, ".udpublish", "sites.yaml")
}
