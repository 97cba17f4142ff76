package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/sourceplane/udpublish/internal/config"
	"github.com/sourceplane/udpublish/internal/credentials"
	"github.com/sourceplane/udpublish/internal/deploy"
	"github.com/sourceplane/udpublish/internal/executor"
	"github.com/sourceplane/udpublish/internal/model"
	"github.com/sourceplane/udpublish/internal/planner"
	"github.com/sourceplane/udpublish/internal/properties"
	"github.com/sourceplane/udpublish/internal/publish"
	"github.com/sourceplane/udpublish/internal/render"
)

// Runner executes one publish run against a configured site.
type Runner struct {
	Sites    *config.Store
	Connect  ClientFactory
	Resolve  CredentialResolver
	Executor executor.Executor
	Stdout   io.Writer
	Stderr   io.Writer
	DryRun   bool

	// Wait overrides the pause between deployment polls.
	Wait deploy.WaitFunc
}

func NewRunner(sites *config.Store, connect ClientFactory, exec executor.Executor, stdout, stderr io.Writer, dryRun bool) *Runner {
	if connect == nil {
		connect = NewUCDClient
	}
	if exec == nil {
		exec = executor.NewLocal("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Runner{
		Sites:    sites,
		Connect:  connect,
		Resolve:  credentials.Resolve,
		Executor: exec,
		Stdout:   stdout,
		Stderr:   stderr,
		DryRun:   dryRun,
	}
}

// Run performs the guard, publish, properties, link and deploy steps in order.
// The returned summary is never nil and reflects every step reached, also
// when an error ends the run early.
func (r *Runner) Run(ctx context.Context, cfg model.RunConfig) (*model.RunSummary, error) {
	tr := render.Transcript{Out: r.Stdout}
	summary := &model.RunSummary{
		APIVersion: model.APIVersion,
		Kind:       model.KindResult,
		Metadata:   model.Metadata{Name: cfg.Name, Description: cfg.Description},
		Component:  cfg.Component,
		Version:    cfg.Version,
		Steps:      []model.StepResult{},
	}

	fail := func(step string, err error) (*model.RunSummary, error) {
		if step != "" {
			record(summary, step, model.StepFailed, err.Error())
		}
		tr.Fail("%v", err)
		return summary, err
	}

	if status := strings.ToUpper(cfg.BuildStatus); status == "FAILURE" || status == "ABORTED" {
		return fail("", fmt.Errorf("%w: build result is %s", model.ErrBuildNotSuccessful, status))
	}

	var desired model.DesiredProperties
	if !cfg.SkipPublish {
		parsed, err := properties.Parse(cfg.Properties)
		if err != nil {
			return fail("", err)
		}
		desired = parsed
	}

	site, err := r.Sites.Site(cfg.Site)
	if err != nil {
		return fail("", err)
	}
	summary.Site = site.Name

	admin := site.AdminUser
	if cfg.UsesAltUser() {
		admin = cfg.AltAdminUser
	}
	steps := planner.Plan(cfg, admin)

	if r.DryRun {
		fmt.Fprint(r.Stdout, render.ViewPlan(cfg, steps))
		for _, s := range steps {
			record(summary, s.Name, model.StepSkipped, "dry run")
		}
		return summary, nil
	}

	id, err := r.Resolve(site, cfg.AltUser, cfg.AltPassword, cfg.AltAdminUser)
	if err != nil {
		return fail("", fmt.Errorf("failed to resolve credentials for site %s: %w", site.Name, err))
	}
	if id.Alt {
		tr.Step("Running job as alternative user %s", id.User)
	}

	services, err := r.Connect(site, id)
	if err != nil {
		return fail("", fmt.Errorf("failed to connect to site %s: %w", site.Name, err))
	}
	glog.V(1).Infof("connected to site %s (%s) as %s", site.Name, site.URL, id.User)

	// maintenance guard
	if planner.Skipped(steps, model.StepMaintenanceGuard) {
		record(summary, model.StepMaintenanceGuard, model.StepSkipped, "")
	} else {
		tr.Step("Checking maintenance mode")
		enabled, err := services.GetMaintenanceModeEnabled(ctx)
		if err != nil {
			return fail(model.StepMaintenanceGuard, fmt.Errorf("failed to query maintenance mode: %w", err))
		}
		if enabled {
			return fail(model.StepMaintenanceGuard, fmt.Errorf("%w: server %s is in maintenance mode", model.ErrMaintenanceModeActive, site.Name))
		}
		record(summary, model.StepMaintenanceGuard, model.StepSucceeded, "")
	}

	// publish
	if planner.Skipped(steps, model.StepPublish) {
		record(summary, model.StepPublish, model.StepSkipped, "")
	} else {
		tr.Step("Publishing version %s of component %s", cfg.Version, cfg.Component)
		task := &publish.Task{
			Publisher: publish.NewPublisher(services, r.Stdout),
			Request: publish.Request{
				BaseDir:     cfg.BaseDir,
				DirOffset:   cfg.DirOffset,
				Include:     cfg.IncludePatterns,
				Exclude:     cfg.ExcludePatterns,
				Component:   cfg.Component,
				Version:     cfg.Version,
				Description: cfg.Description,
			},
		}
		if err := r.Executor.Execute(ctx, task); err != nil {
			return fail(model.StepPublish, err)
		}
		summary.VersionID = task.VersionID.String()
		record(summary, model.StepPublish, model.StepSucceeded, summary.VersionID)
		tr.Done("Published version %s (%s)", cfg.Version, summary.VersionID)
	}

	// properties
	if planner.Skipped(steps, model.StepProperties) {
		record(summary, model.StepProperties, model.StepSkipped, "")
	} else {
		tr.Step("Setting %d version properties", len(desired))
		reconciler := properties.NewReconciler(services, services, services, r.Stdout)
		result, err := reconciler.Reconcile(ctx, cfg.Component, cfg.Version, desired)
		if result != nil {
			summary.Properties = &model.PropertyResult{Updated: result.Updated, Created: result.Created}
		}
		if err != nil {
			return fail(model.StepProperties, err)
		}
		record(summary, model.StepProperties, model.StepSucceeded, "")
		tr.Done("Properties set (%d updated, %d created)", len(result.Updated), len(result.Created))
	}

	// link
	if planner.Skipped(steps, model.StepLink) {
		record(summary, model.StepLink, model.StepSkipped, "")
	} else if AnnotateLink(ctx, services, tr, cfg.Component, cfg.Version, cfg.LinkName, cfg.LinkURL) {
		record(summary, model.StepLink, model.StepSucceeded, cfg.LinkURL)
	} else {
		record(summary, model.StepLink, model.StepWarning, "link annotation failed")
	}

	// deploy
	if planner.Skipped(steps, model.StepDeploy) {
		record(summary, model.StepDeploy, model.StepSkipped, "")
		return summary, nil
	}

	tr.Step("Deploying %s %s to %s", cfg.Component, cfg.Version, cfg.DeployEnv)
	deployer := deploy.NewDeployer(services, cfg.PollInterval, r.Stdout)
	if r.Wait != nil {
		deployer.Wait = r.Wait
	}
	result, err := deployer.TriggerAndWait(ctx, deploy.Request{
		Application: cfg.DeployApp,
		Environment: cfg.DeployEnv,
		Process:     cfg.DeployProc,
		Component:   cfg.Component,
		Version:     cfg.Version,
	})
	if err != nil {
		return fail(model.StepDeploy, err)
	}

	summary.Deployment = &model.DeployResult{
		RequestID: result.RequestID,
		Status:    string(result.Status),
		Seconds:   int64(result.Duration / time.Second),
		Polls:     result.Polls,
	}
	record(summary, model.StepDeploy, model.StepSucceeded, string(result.Status))
	tr.Done("The deployment %s", strings.ToLower(string(result.Status)))

	return summary, nil
}

func record(summary *model.RunSummary, name, state, message string) {
	summary.Steps = append(summary.Steps, model.StepResult{Name: name, State: state, Message: message})
}
