package model

// RunSummary is the machine-readable outcome of a run
type RunSummary struct {
	APIVersion string          `json:"apiVersion" yaml:"apiVersion"`
	Kind       string          `json:"kind" yaml:"kind"`
	Metadata   Metadata        `json:"metadata" yaml:"metadata"`
	Site       string          `json:"site" yaml:"site"`
	Component  string          `json:"component" yaml:"component"`
	Version    string          `json:"version" yaml:"version"`
	VersionID  string          `json:"versionId,omitempty" yaml:"versionId,omitempty"`
	Steps      []StepResult    `json:"steps" yaml:"steps"`
	Properties *PropertyResult `json:"properties,omitempty" yaml:"properties,omitempty"`
	Deployment *DeployResult   `json:"deployment,omitempty" yaml:"deployment,omitempty"`
}

// PlannedStep is one stage of a run and whether it will execute
type PlannedStep struct {
	Name   string `json:"name" yaml:"name"`
	Skip   bool   `json:"skip,omitempty" yaml:"skip,omitempty"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// StepResult records what happened to a planned step
type StepResult struct {
	Name    string `json:"name" yaml:"name"`
	State   string `json:"state" yaml:"state"` // succeeded, skipped, failed, warning
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// PropertyResult lists the property names written on the version
type PropertyResult struct {
	Updated []string `json:"updated" yaml:"updated"`
	Created []string `json:"created" yaml:"created"`
}

// DeployResult describes a finished deployment request
type DeployResult struct {
	RequestID string `json:"requestId" yaml:"requestId"`
	Status    string `json:"status" yaml:"status"`
	Seconds   int64  `json:"seconds" yaml:"seconds"`
	Polls     int    `json:"polls" yaml:"polls"`
}

const (
	StepSucceeded = "succeeded"
	StepSkipped   = "skipped"
	StepFailed    = "failed"
	StepWarning   = "warning"
)

const (
	StepMaintenanceGuard = "maintenance-guard"
	StepPublish          = "publish"
	StepProperties       = "properties"
	StepLink             = "link"
	StepDeploy           = "deploy"
)
