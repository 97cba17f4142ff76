package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	"github.com/sourceplane/udpublish/internal/expand"
	"github.com/sourceplane/udpublish/internal/git"
	"github.com/sourceplane/udpublish/internal/loader"
	"github.com/sourceplane/udpublish/internal/model"
	"github.com/sourceplane/udpublish/internal/normalize"
	"github.com/spf13/cobra"
)

// runFlags mirror RunSpec; a flag only overrides the run file when it was set.
var runFlags struct {
	site         string
	altUser      string
	altPassword  string
	altAdmin     bool
	component    string
	version      string
	description  string
	baseDir      string
	offset       string
	include      string
	exclude      string
	properties   string
	linkName     string
	linkURL      string
	skipPublish  bool
	deploy       bool
	application  string
	environment  string
	process      string
	pollInterval string
	buildStatus  string
}

func bindRunFlags(cmd *cobra.Command, publishing bool) {
	f := cmd.Flags()
	f.StringVarP(&runFile, "file", "f", "", "Run file (PublishRun YAML)")
	f.StringVar(&runFlags.site, "site", "", "Site name (default: first configured site)")
	f.StringVar(&runFlags.altUser, "alt-user", "", "Run as this user instead of the site user")
	f.StringVar(&runFlags.altPassword, "alt-password", "", "Password of the alternative user")
	f.BoolVar(&runFlags.altAdmin, "alt-admin", false, "The alternative user is an administrator")
	f.StringVar(&runFlags.component, "component", "", "Component name")
	f.StringVar(&runFlags.version, "version", "", "Version name")
	f.StringVar(&runFlags.buildStatus, "build-status", "", "Result of the calling build; FAILURE or ABORTED stops the run")

	f.StringVar(&runFlags.application, "application", "", "Application to deploy")
	f.StringVar(&runFlags.environment, "environment", "", "Environment to deploy to")
	f.StringVar(&runFlags.process, "process", "", "Application process to run")
	f.StringVar(&runFlags.pollInterval, "poll-interval", "", "Pause between deployment status checks (e.g. 3s)")

	if !publishing {
		return
	}
	f.StringVar(&runFlags.description, "description", "", "Version description (default: git HEAD summary)")
	f.StringVar(&runFlags.baseDir, "base-dir", "", "Base artifact directory")
	f.StringVar(&runFlags.offset, "offset", "", "Directory offset below the base directory")
	f.StringVar(&runFlags.include, "include", "", "Newline-separated include patterns")
	f.StringVar(&runFlags.exclude, "exclude", "", "Newline-separated exclude patterns")
	f.StringVar(&runFlags.properties, "properties", "", "Newline-separated name=value version properties")
	f.StringVar(&runFlags.linkName, "link-name", "", "Name of the CI link attached to the version")
	f.StringVar(&runFlags.linkURL, "link-url", "", "URL of the CI link (default: $BUILD_URL)")
	f.BoolVar(&runFlags.skipPublish, "skip-publish", false, "Do not create a version, only deploy")
	f.BoolVar(&runFlags.deploy, "deploy", false, "Run the application process after publishing")
}

// loadRunConfig reads the run file, applies flag overrides and normalizes the result
func loadRunConfig(cmd *cobra.Command) (model.RunConfig, error) {
	doc := &model.RunDocument{APIVersion: model.APIVersion, Kind: model.KindPublishRun}
	if runFile != "" {
		loaded, err := loader.LoadRunDocument(runFile)
		if err != nil {
			return model.RunConfig{}, err
		}
		doc = loaded
	}

	f := cmd.Flags()
	spec := &doc.Spec
	str := func(name string, target *string, value string) {
		if f.Changed(name) {
			*target = value
		}
	}
	boolean := func(name string, target *bool, value bool) {
		if f.Changed(name) {
			*target = value
		}
	}

	str("site", &spec.Site, runFlags.site)
	str("alt-user", &spec.AltUser, runFlags.altUser)
	str("alt-password", &spec.AltPassword, runFlags.altPassword)
	boolean("alt-admin", &spec.AltAdminUser, runFlags.altAdmin)
	str("component", &spec.Component, runFlags.component)
	str("version", &spec.Version, runFlags.version)
	str("description", &spec.Description, runFlags.description)
	str("base-dir", &spec.BaseDir, runFlags.baseDir)
	str("offset", &spec.DirOffset, runFlags.offset)
	str("include", &spec.Include, runFlags.include)
	str("exclude", &spec.Exclude, runFlags.exclude)
	str("properties", &spec.Properties, runFlags.properties)
	str("link-name", &spec.Link.Name, runFlags.linkName)
	str("link-url", &spec.Link.URL, runFlags.linkURL)
	boolean("skip-publish", &spec.SkipPublish, runFlags.skipPublish)
	boolean("deploy", &spec.Deploy.Enabled, runFlags.deploy)
	str("application", &spec.Deploy.Application, runFlags.application)
	str("environment", &spec.Deploy.Environment, runFlags.environment)
	str("process", &spec.Deploy.Process, runFlags.process)
	str("poll-interval", &spec.Deploy.PollInterval, runFlags.pollInterval)
	str("build-status", &spec.BuildStatus, runFlags.buildStatus)

	cfg, err := normalize.RunConfig(doc, expand.FromEnviron())
	if err != nil {
		return model.RunConfig{}, err
	}

	if cfg.Description == "" && !cfg.SkipPublish {
		info, err := git.Describe(cfg.BaseDir)
		switch {
		case err == nil:
			cfg.Description = info.Description()
		case errors.Is(err, git.ErrNotRepository):
			glog.V(1).Infof("no git repository at %s, leaving description empty", cfg.BaseDir)
		default:
			glog.Warningf("failed to describe git HEAD: %v", err)
		}
	}

	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM so a deployment wait can be interrupted
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
