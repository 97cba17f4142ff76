package runner

import (
	"context"
	"time"

	"github.com/sourceplane/udpublish/internal/credentials"
	"github.com/sourceplane/udpublish/internal/deploy"
	"github.com/sourceplane/udpublish/internal/model"
	"github.com/sourceplane/udpublish/internal/properties"
	"github.com/sourceplane/udpublish/internal/publish"
	"github.com/sourceplane/udpublish/internal/ucd"
)

// SystemService reports server-wide settings.
type SystemService interface {
	GetMaintenanceModeEnabled(ctx context.Context) (bool, error)
}

// LinkService attaches links to component versions.
type LinkService interface {
	AddVersionLink(ctx context.Context, component, version, linkName, linkURL string) error
}

// Services is everything a run needs from one server.
type Services interface {
	SystemService
	LinkService
	publish.VersionService
	properties.ComponentService
	properties.PropertyService
	properties.ValueService
	deploy.ApplicationService
}

// ClientFactory connects to site as the resolved identity.
type ClientFactory func(site model.Site, id credentials.Identity) (Services, error)

// CredentialResolver picks the identity of a run.
type CredentialResolver func(site model.Site, altUser, altPassword string, altAdmin bool) (credentials.Identity, error)

// DefaultResponseTimeout bounds how long the server may take to answer a
// request after it was sent. Request bodies are never timed.
const DefaultResponseTimeout = 5 * time.Minute

// NewUCDClient is the ClientFactory talking to a real server.
func NewUCDClient(site model.Site, id credentials.Identity) (Services, error) {
	client, err := ucd.NewClient(site.URL, id.User, id.Password, ucd.Options{
		TrustAllCerts:         site.TrustAllCerts,
		ResponseHeaderTimeout: DefaultResponseTimeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
