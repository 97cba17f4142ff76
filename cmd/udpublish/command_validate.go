package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/sourceplane/udpublish/internal/loader"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a run file and the site registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateFiles()
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&runFile, "file", "f", "", "Run file (PublishRun YAML)")
}

func validateFiles() error {
	if runFile != "" {
		fmt.Printf("□ Validating run file %s...\n", runFile)
		doc, err := loader.LoadRunDocument(runFile)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Run %q publishes component %s\n", doc.Metadata.Name, doc.Spec.Component)
	}

	fmt.Printf("□ Validating site registry %s...\n", sitesFile)
	registry, err := loader.LoadSiteRegistry(sitesFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Println("✓ No site registry yet")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d sites configured\n", len(registry.Sites))
	return nil
}
