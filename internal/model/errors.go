package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersionName indicates that a version name is empty or longer than MaxVersionNameLength characters.
	ErrInvalidVersionName = errors.New("invalid version name")

	// ErrDirectoryNotFound indicates that the artifact base directory does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrVersionCreationFailed indicates that the server refused to create the component version.
	ErrVersionCreationFailed = errors.New("version creation failed")

	// ErrUploadFailed indicates that artifacts could not be uploaded into a created version.
	ErrUploadFailed = errors.New("upload failed")

	// ErrSchemaFetchFailed indicates that the version property sheet or its definitions could not be read.
	ErrSchemaFetchFailed = errors.New("property schema fetch failed")

	// ErrPropertyUpdateFailed indicates that a value could not be written for an existing property definition.
	ErrPropertyUpdateFailed = errors.New("property update failed")

	// ErrPropertyCreationFailed indicates that a new property definition or its value could not be written.
	ErrPropertyCreationFailed = errors.New("property creation failed")

	// ErrMissingDeployParameter indicates that a deployment was requested without application, environment or process.
	ErrMissingDeployParameter = errors.New("missing deploy parameter")

	// ErrDeployRequestFailed indicates that the server refused the application process request.
	ErrDeployRequestFailed = errors.New("deploy request failed")

	// ErrDeploymentFailed indicates that the deployment ended in a failed status.
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrMaintenanceModeActive indicates that the server is in maintenance mode, so nothing is published or deployed.
	ErrMaintenanceModeActive = errors.New("maintenance mode active")

	// ErrLinkAnnotationFailed indicates that a link could not be attached to a version.
	ErrLinkAnnotationFailed = errors.New("link annotation failed")

	// ErrMalformedPropertyLine indicates that a properties line has no '=' delimiter or an empty name.
	ErrMalformedPropertyLine = errors.New("malformed property line")

	// ErrSiteNotFound indicates that no configured site matches the requested name.
	ErrSiteNotFound = errors.New("site not found")

	// ErrInvalidConfig indicates that a run configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrBuildNotSuccessful indicates that the hosting build already failed or was
	// aborted, so nothing is published.
	ErrBuildNotSuccessful = errors.New("build not successful")
)

// UploadError reports a failed artifact upload together with the outcome of the
// compensating version delete. It unwraps to ErrUploadFailed and the upload error
// only; DeleteErr is informational.
type UploadError struct {
	Version   string
	VersionID VersionID
	Err       error
	DeleteErr error
}

func (e *UploadError) Error() string {
	msg := fmt.Sprintf("%v: failed to upload files to version '%s': %v", ErrUploadFailed, e.Version, e.Err)
	if e.DeleteErr != nil {
		msg += fmt.Sprintf(" (version %s could not be deleted: %v)", e.VersionID, e.DeleteErr)
	}
	return msg
}

func (e *UploadError) Unwrap() []error {
	return []error{ErrUploadFailed, e.Err}
}
