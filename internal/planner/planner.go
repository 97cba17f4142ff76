package planner

import (
	"strings"

	"github.com/sourceplane/udpublish/internal/model"
)

// Plan returns the ordered steps a run will take and why any are skipped.
// admin reports whether the resolved identity is an administrator.
func Plan(cfg model.RunConfig, admin bool) []model.PlannedStep {
	steps := make([]model.PlannedStep, 0, 5)

	guard := model.PlannedStep{Name: model.StepMaintenanceGuard}
	if !admin {
		guard.Skip = true
		guard.Reason = "identity is not an administrator"
	}
	steps = append(steps, guard)

	publish := model.PlannedStep{Name: model.StepPublish}
	properties := model.PlannedStep{Name: model.StepProperties}
	link := model.PlannedStep{Name: model.StepLink}

	if cfg.SkipPublish {
		for _, s := range []*model.PlannedStep{&publish, &properties, &link} {
			s.Skip = true
			s.Reason = "publishing is skipped"
		}
	} else {
		if strings.TrimSpace(cfg.Properties) == "" {
			properties.Skip = true
			properties.Reason = "no properties given"
		}
		if cfg.LinkURL == "" {
			link.Skip = true
			link.Reason = "no link url"
		}
	}
	steps = append(steps, publish, properties, link)

	deploy := model.PlannedStep{Name: model.StepDeploy}
	if !cfg.Deploy {
		deploy.Skip = true
		deploy.Reason = "deployment not requested"
	}
	steps = append(steps, deploy)

	return steps
}

// Skipped reports whether the named step is skipped in steps
func Skipped(steps []model.PlannedStep, name string) bool {
	for _, s := range steps {
		if s.Name == name {
			return s.Skip
		}
	}
	return true
}
