package render

import (
	"fmt"
	"strings"

	"github.com/sourceplane/udpublish/internal/model"
)

// ViewPlan returns a tree view of the planned steps of a run
func ViewPlan(cfg model.RunConfig, steps []model.PlannedStep) string {
	var sb strings.Builder

	site := cfg.Site
	if site == "" {
		site = "(first configured site)"
	}
	sb.WriteString(fmt.Sprintf("%s %s → %s\n", cfg.Component, cfg.Version, site))

	for i, step := range steps {
		prefix := "├─ "
		if i == len(steps)-1 {
			prefix = "└─ "
		}
		if step.Skip {
			sb.WriteString(fmt.Sprintf("%s%s (skipped: %s)\n", prefix, step.Name, step.Reason))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s%s%s\n", prefix, step.Name, stepDetail(cfg, step.Name)))
	}

	return sb.String()
}

func stepDetail(cfg model.RunConfig, name string) string {
	switch name {
	case model.StepPublish:
		return fmt.Sprintf(" [%s]", strings.Join(strings.Fields(cfg.IncludePatterns), " "))
	case model.StepLink:
		return fmt.Sprintf(" [%s]", cfg.LinkName)
	case model.StepDeploy:
		return fmt.Sprintf(" [%s/%s/%s every %s]", cfg.DeployApp, cfg.DeployEnv, cfg.DeployProc, cfg.PollInterval)
	}
	return ""
}
