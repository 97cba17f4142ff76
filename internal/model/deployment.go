package model

import "strings"

// DeploymentRequest is a single application process request
type DeploymentRequest struct {
	ID          string              `json:"requestId,omitempty"`
	Application string              `json:"application"`
	Environment string              `json:"environment"`
	Process     string              `json:"process"`
	Versions    map[string][]string `json:"versions"` // component -> [version]
}

// DeploymentStatus is the result string reported for a deployment request
type DeploymentStatus string

// StatusClass groups deployment statuses by how the poller reacts to them
type StatusClass int

const (
	StatusPending StatusClass = iota
	StatusFailed
	StatusFinished
)

func (c StatusClass) String() string {
	switch c {
	case StatusPending:
		return "pending"
	case StatusFailed:
		return "failed"
	default:
		return "finished"
	}
}

// Classify maps a status onto pending, failed-terminal or other-terminal.
// Comparison is case-insensitive.
func (s DeploymentStatus) Classify() StatusClass {
	switch strings.ToUpper(string(s)) {
	case "", "NONE", "SCHEDULED FOR FUTURE":
		return StatusPending
	case "FAULTED", "FAILED TO START":
		return StatusFailed
	default:
		return StatusFinished
	}
}
