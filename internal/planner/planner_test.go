package planner

import (
	"testing"

	"github.com/sourceplane/udpublish/internal/model"
)

func names(steps []model.PlannedStep) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if !s.Skip {
			out = append(out, s.Name)
		}
	}
	return out
}

func TestPlan(t *testing.T) {
	full := model.RunConfig{
		Component:  "web",
		Version:    "1.0",
		Properties: "A=1",
		LinkURL:    "https://ci/1",
		Deploy:     true,
	}

	tests := []struct {
		name  string
		cfg   model.RunConfig
		admin bool
		want  []string
	}{
		{
			name:  "everything",
			cfg:   full,
			admin: true,
			want:  []string{model.StepMaintenanceGuard, model.StepPublish, model.StepProperties, model.StepLink, model.StepDeploy},
		},
		{
			name: "non admin skips guard",
			cfg:  full,
			want: []string{model.StepPublish, model.StepProperties, model.StepLink, model.StepDeploy},
		},
		{
			name: "skip publish keeps deploy",
			cfg: func() model.RunConfig {
				c := full
				c.SkipPublish = true
				return c
			}(),
			want: []string{model.StepDeploy},
		},
		{
			name: "publish only",
			cfg:  model.RunConfig{Component: "web", Version: "1.0", Properties: "\n  \n"},
			want: []string{model.StepPublish},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := Plan(tt.cfg, tt.admin)
			if len(steps) != 5 {
				t.Fatalf("len(steps) = %d, want 5", len(steps))
			}
			got := names(steps)
			if len(got) != len(tt.want) {
				t.Fatalf("active steps = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("active steps = %v, want %v", got, tt.want)
				}
			}
			for _, s := range steps {
				if s.Skip && s.Reason == "" {
					t.Errorf("step %s skipped without reason", s.Name)
				}
			}
		})
	}
}

func TestSkipped(t *testing.T) {
	steps := Plan(model.RunConfig{Deploy: true}, false)
	if !Skipped(steps, model.StepMaintenanceGuard) || Skipped(steps, model.StepDeploy) {
		t.Errorf("unexpected skip flags: %+v", steps)
	}
	if !Skipped(steps, "unknown") {
		t.Error("unknown step should count as skipped")
	}
}
