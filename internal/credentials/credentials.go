// Package credentials resolves the identity a run authenticates with. Site
// passwords are kept out of the registry file and stored in the OS keyring.
package credentials

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/sourceplane/udpublish/internal/model"
	"github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service name all secrets are stored under
	Service = "udpublish"

	// PasswordEnv overrides the keyring for the resolved user
	PasswordEnv = "UDPUBLISH_PASSWORD"
)

// ErrNoPassword is returned when no password source yields a secret
var ErrNoPassword = errors.New("no password available")

// Identity is the user a run talks to the server as
type Identity struct {
	User     string
	Password string
	Admin    bool
	Alt      bool
}

func account(site, user string) string {
	return user + "@" + site
}

// Lookup reads the stored password for user on site
func Lookup(site, user string) (string, error) {
	secret, err := keyring.Get(Service, account(site, user))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w for %s on site %s", ErrNoPassword, user, site)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return secret, nil
}

// Store saves the password for user on site
func Store(site, user, password string) error {
	if err := keyring.Set(Service, account(site, user), password); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

// Delete removes the stored password. A missing entry is not an error.
func Delete(site, user string) error {
	err := keyring.Delete(Service, account(site, user))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete keyring entry: %w", err)
	}
	return nil
}

// Resolve picks the identity for a run. The alternative user wins when set.
// An empty password falls back to PasswordEnv and then the keyring.
func Resolve(site model.Site, altUser, altPassword string, altAdmin bool) (Identity, error) {
	id := Identity{User: site.User, Password: site.Password, Admin: site.AdminUser}
	if altUser != "" {
		id = Identity{User: altUser, Password: altPassword, Admin: altAdmin, Alt: true}
	}

	if id.Password != "" {
		return id, nil
	}
	if env := os.Getenv(PasswordEnv); env != "" {
		glog.V(1).Infof("using password for %s from %s", id.User, PasswordEnv)
		id.Password = env
		return id, nil
	}

	secret, err := Lookup(site.Name, id.User)
	if err != nil {
		return Identity{}, err
	}
	id.Password = secret
	return id, nil
}
