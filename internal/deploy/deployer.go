package deploy

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/sourceplane/udpublish/internal/model"
)

// DefaultPollInterval is the pause between two status checks.
const DefaultPollInterval = 3 * time.Second

// ApplicationService starts application processes and reports their result.
type ApplicationService interface {
	RequestDeployment(ctx context.Context, app, process, environment string, versions map[string][]string) (string, error)
	GetDeploymentStatus(ctx context.Context, requestID string) (string, error)
}

// Request names the application process to run and the version to deploy.
type Request struct {
	Application string
	Environment string
	Process     string
	Component   string
	Version     string
}

// Result is the terminal outcome of a deployment request.
type Result struct {
	RequestID string
	Status    model.DeploymentStatus
	Duration  time.Duration
	Polls     int
}

// WaitFunc pauses for d or until ctx is done, whichever comes first.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Deployer submits a deployment request and blocks until it reaches a
// terminal status. There is no timeout; cancel ctx to stop waiting.
type Deployer struct {
	Apps     ApplicationService
	Interval time.Duration
	Wait     WaitFunc
	Now      func() time.Time
	Out      io.Writer
}

// NewDeployer creates a deployer polling every interval (DefaultPollInterval
// when zero).
func NewDeployer(apps ApplicationService, interval time.Duration, out io.Writer) *Deployer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if out == nil {
		out = io.Discard
	}
	return &Deployer{
		Apps:     apps,
		Interval: interval,
		Wait:     Sleep,
		Now:      time.Now,
		Out:      out,
	}
}

// TriggerAndWait requests the deployment of one component version and polls
// its status. Statuses that are neither pending nor failed are returned as is;
// interpreting them is left to the caller.
func (d *Deployer) TriggerAndWait(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	fmt.Fprintf(d.Out, "  Starting deployment process %s of application %s in environment %s\n",
		req.Process, req.Application, req.Environment)

	versions := map[string][]string{req.Component: {req.Version}}
	requestID, err := d.Apps.RequestDeployment(ctx, req.Application, req.Process, req.Environment, versions)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create application process request '%s': %w",
			model.ErrDeployRequestFailed, req.Process, err)
	}

	fmt.Fprintf(d.Out, "  Deployment request created with id: %s\n", requestID)
	fmt.Fprintf(d.Out, "  Deployment of application request %s of application %s is running.\n", requestID, req.Application)

	start := d.Now()
	result := &Result{RequestID: requestID}

	for {
		raw, err := d.Apps.GetDeploymentStatus(ctx, requestID)
		result.Polls++
		if err != nil {
			return nil, fmt.Errorf("failed to acquire status of application process '%s': %w", requestID, err)
		}

		status := model.DeploymentStatus(raw)
		class := status.Classify()
		glog.V(2).Infof("deployment request %s poll %d: %q (%s)", requestID, result.Polls, raw, class)

		switch class {
		case model.StatusFailed:
			return nil, fmt.Errorf("%w: deployment process failed with result %s", model.ErrDeploymentFailed, raw)
		case model.StatusFinished:
			result.Status = status
			result.Duration = d.Now().Sub(start)
			fmt.Fprintf(d.Out, "  Finished deployment of application request %s for application %s in environment %s in %d seconds\n",
				requestID, req.Application, req.Environment, int64(result.Duration/time.Second))
			return result, nil
		}

		if err := d.Wait(ctx, d.Interval); err != nil {
			return nil, fmt.Errorf("stopped waiting for application process '%s': %w", requestID, err)
		}
	}
}

func (r Request) validate() error {
	for _, f := range []struct{ name, value string }{
		{"application", r.Application},
		{"environment", r.Environment},
		{"process", r.Process},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: deploy %s is a required field if deploy is selected", model.ErrMissingDeployParameter, f.name)
		}
	}
	return nil
}

// Sleep waits for d, returning early with ctx.Err() if ctx is done first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
