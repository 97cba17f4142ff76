package model

import "time"

// RunDocument is the declarative description of a single publish run
type RunDocument struct {
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"`
	Kind       string   `yaml:"kind" json:"kind"`
	Metadata   Metadata `yaml:"metadata" json:"metadata"`
	Spec       RunSpec  `yaml:"spec" json:"spec"`
}

// Metadata holds standard object metadata
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// RunSpec is the raw, unexpanded run configuration as written by the user
type RunSpec struct {
	Site         string     `yaml:"site" json:"site"`
	AltUser      string     `yaml:"altUser,omitempty" json:"altUser,omitempty"`
	AltPassword  string     `yaml:"altPassword,omitempty" json:"altPassword,omitempty"`
	AltAdminUser bool       `yaml:"altAdminUser,omitempty" json:"altAdminUser,omitempty"`
	Component    string     `yaml:"component" json:"component"`
	Version      string     `yaml:"version" json:"version"`
	Description  string     `yaml:"description,omitempty" json:"description,omitempty"`
	BaseDir      string     `yaml:"baseDir" json:"baseDir"`
	DirOffset    string     `yaml:"directoryOffset,omitempty" json:"directoryOffset,omitempty"`
	Include      string     `yaml:"include,omitempty" json:"include,omitempty"` // newline-delimited
	Exclude      string     `yaml:"exclude,omitempty" json:"exclude,omitempty"` // newline-delimited
	SkipPublish  bool       `yaml:"skipPublish,omitempty" json:"skipPublish,omitempty"`
	Properties   string     `yaml:"properties,omitempty" json:"properties,omitempty"` // newline-delimited name=value
	Link         LinkSpec   `yaml:"link,omitempty" json:"link,omitempty"`
	Deploy       DeploySpec `yaml:"deploy,omitempty" json:"deploy,omitempty"`
	BuildStatus  string     `yaml:"buildStatus,omitempty" json:"buildStatus,omitempty"`
}

// LinkSpec names the traceability link attached to a published version
type LinkSpec struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

// DeploySpec configures the optional application process run
type DeploySpec struct {
	Enabled      bool   `yaml:"enabled" json:"enabled"`
	Application  string `yaml:"application,omitempty" json:"application,omitempty"`
	Environment  string `yaml:"environment,omitempty" json:"environment,omitempty"`
	Process      string `yaml:"process,omitempty" json:"process,omitempty"`
	PollInterval string `yaml:"pollInterval,omitempty" json:"pollInterval,omitempty"`
}

// RunConfig is the validated, fully expanded configuration of a run. It is built
// once at the entry point and passed by value; nothing mutates it afterwards.
type RunConfig struct {
	Name         string
	Site         string
	AltUser      string
	AltPassword  string
	AltAdminUser bool

	Component       string
	Version         string
	Description     string
	BaseDir         string
	DirOffset       string
	IncludePatterns string
	ExcludePatterns string
	SkipPublish     bool
	Properties      string
	LinkName        string
	LinkURL         string

	Deploy       bool
	DeployApp    string
	DeployEnv    string
	DeployProc   string
	PollInterval time.Duration

	BuildStatus string
	DryRun      bool
}

// UsesAltUser reports whether the run authenticates as the alternative user
func (c RunConfig) UsesAltUser() bool {
	return c.AltUser != ""
}
