package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/sourceplane/udpublish/internal/config"
	"github.com/sourceplane/udpublish/internal/planner"
	"github.com/sourceplane/udpublish/internal/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var planFormat string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the steps a run would take",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showPlan(cmd)
	},
}

func registerPlanCommand(root *cobra.Command) {
	root.AddCommand(planCmd)

	bindRunFlags(planCmd, true)
	planCmd.Flags().StringVarP(&planFormat, "output", "o", "tree", "Output format (tree/json/yaml)")
}

func showPlan(cmd *cobra.Command) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	admin := cfg.AltAdminUser
	if !cfg.UsesAltUser() {
		store, err := config.Load(sitesFile)
		if err != nil {
			return err
		}
		site, err := store.Site(cfg.Site)
		if err != nil {
			glog.Warningf("%v; assuming a non-admin identity", err)
		}
		admin = site.AdminUser
	}

	steps := planner.Plan(cfg, admin)

	switch planFormat {
	case "json":
		data, err := json.MarshalIndent(steps, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render plan: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(steps)
		if err != nil {
			return fmt.Errorf("failed to render plan: %w", err)
		}
		os.Stdout.Write(data)
	default:
		fmt.Print(render.ViewPlan(cfg, steps))
	}
	return nil
}
