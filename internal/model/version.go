package model

import "github.com/google/uuid"

// VersionID is the server-assigned identifier of a component version
type VersionID = uuid.UUID

// PropertyTypeText is the generic text type used for every definition this tool creates
const PropertyTypeText = "TEXT"

// MaxVersionNameLength is the longest version name the server accepts
const MaxVersionNameLength = 255

// ComponentVersion is a named snapshot of a component's artifacts
type ComponentVersion struct {
	ID          VersionID `json:"id"`
	Component   string    `json:"component"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// PropertySheetDefinition is the schema attached to all versions of a component
type PropertySheetDefinition struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// PropertyDefinition is a single typed property in a property sheet definition
type PropertyDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Label       string `json:"label"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Value       string `json:"value"`
}

// DesiredProperties maps property names to the values to stamp on a version
type DesiredProperties map[string]string
