package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/sourceplane/udpublish/internal/deploy"
	"github.com/sourceplane/udpublish/internal/expand"
	"github.com/sourceplane/udpublish/internal/model"
)

// DefaultInclude is applied when a run names no include patterns
const DefaultInclude = "**/*"

// RunConfig transforms a raw run document into its validated, expanded form
func RunConfig(doc *model.RunDocument, env *expand.Expander) (model.RunConfig, error) {
	if doc == nil {
		return model.RunConfig{}, fmt.Errorf("%w: run document cannot be nil", model.ErrInvalidConfig)
	}
	if env == nil {
		env = expand.FromEnviron()
	}

	spec := doc.Spec
	field := func(name, value string) string {
		if missing := env.Missing(value); len(missing) > 0 {
			glog.Warningf("%s references unset variables %v", name, missing)
		}
		return strings.TrimSpace(env.Expand(value))
	}

	cfg := model.RunConfig{
		Name:         strings.TrimSpace(doc.Metadata.Name),
		Site:         field("site", spec.Site),
		AltUser:      field("altUser", spec.AltUser),
		AltPassword:  env.Expand(spec.AltPassword),
		AltAdminUser: spec.AltAdminUser,

		Component:       field("component", spec.Component),
		Version:         field("version", spec.Version),
		Description:     field("description", spec.Description),
		BaseDir:         field("baseDir", spec.BaseDir),
		DirOffset:       field("directoryOffset", spec.DirOffset),
		IncludePatterns: env.Expand(spec.Include),
		ExcludePatterns: env.Expand(spec.Exclude),
		SkipPublish:     spec.SkipPublish,
		Properties:      env.Expand(spec.Properties),
		LinkName:        field("link.name", spec.Link.Name),
		LinkURL:         field("link.url", spec.Link.URL),

		Deploy:     spec.Deploy.Enabled,
		DeployApp:  field("deploy.application", spec.Deploy.Application),
		DeployEnv:  field("deploy.environment", spec.Deploy.Environment),
		DeployProc: field("deploy.process", spec.Deploy.Process),

		BuildStatus: strings.ToUpper(field("buildStatus", spec.BuildStatus)),
	}

	if cfg.Component == "" {
		return model.RunConfig{}, fmt.Errorf("%w: component is required", model.ErrInvalidConfig)
	}
	if cfg.Version == "" {
		return model.RunConfig{}, fmt.Errorf("%w: version is required", model.ErrInvalidConfig)
	}
	if cfg.AltUser == "" && cfg.AltPassword != "" {
		return model.RunConfig{}, fmt.Errorf("%w: altPassword set without altUser", model.ErrInvalidConfig)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	if strings.TrimSpace(cfg.IncludePatterns) == "" {
		cfg.IncludePatterns = DefaultInclude
	}

	if cfg.LinkURL == "" {
		cfg.LinkURL, _ = env.Lookup("BUILD_URL")
	}
	if cfg.LinkName == "" {
		name := cfg.Name
		if name == "" {
			name, _ = env.Lookup("JOB_NAME")
		}
		if name == "" {
			name = cfg.Component
		}
		cfg.LinkName = "CI Build " + name
	}

	cfg.PollInterval = deploy.DefaultPollInterval
	if raw := field("deploy.pollInterval", spec.Deploy.PollInterval); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return model.RunConfig{}, fmt.Errorf("%w: invalid pollInterval %q: %v", model.ErrInvalidConfig, raw, err)
		}
		if d <= 0 {
			return model.RunConfig{}, fmt.Errorf("%w: pollInterval must be positive", model.ErrInvalidConfig)
		}
		cfg.PollInterval = d
	}

	return cfg, nil
}
