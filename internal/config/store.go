package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/sourceplane/udpublish/internal/loader"
	"github.com/sourceplane/udpublish/internal/model"
	"gopkg.in/yaml.v3"
)

// Store holds the site registry read from a single YAML file. It is loaded
// once and only re-read when Reload is called.
type Store struct {
	path string

	mu       sync.RWMutex
	registry model.SiteRegistry
}

// NewStore returns an empty store backed by path
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		registry: emptyRegistry(),
	}
}

// Load creates a store and reads the registry from path. A missing file
// yields an empty registry.
func Load(path string) (*Store, error) {
	s := NewStore(path)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the registry file location
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the registry file, replacing the in-memory sites
func (s *Store) Reload() error {
	registry, err := loader.LoadSiteRegistry(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		glog.V(1).Infof("site registry %s does not exist, starting empty", s.path)
		empty := emptyRegistry()
		registry = &empty
	} else if err != nil {
		return fmt.Errorf("failed to load site registry: %w", err)
	}

	s.mu.Lock()
	s.registry = *registry
	s.mu.Unlock()
	return nil
}

// Save writes the registry back to its file
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := yaml.Marshal(&s.registry)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode site registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write site registry: %w", err)
	}
	return nil
}

// Sites returns a copy of the configured sites in file order
func (s *Store) Sites() []model.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Site, len(s.registry.Sites))
	copy(out, s.registry.Sites)
	return out
}

// Site looks up a site by name. An empty name selects the first site.
func (s *Store) Site(name string) (model.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.registry.Sites) == 0 {
		return model.Site{}, fmt.Errorf("%w: no sites configured in %s", model.ErrSiteNotFound, s.path)
	}
	if name == "" {
		return s.registry.Sites[0], nil
	}
	for _, site := range s.registry.Sites {
		if site.Name == name {
			return site, nil
		}
	}
	return model.Site{}, fmt.Errorf("%w: %s", model.ErrSiteNotFound, name)
}

// Put adds a site or replaces the one with the same name
func (s *Store) Put(site model.Site) error {
	if site.Name == "" || site.User == "" {
		return fmt.Errorf("%w: site requires a name and user", model.ErrInvalidConfig)
	}
	if !strings.HasPrefix(site.URL, "http://") && !strings.HasPrefix(site.URL, "https://") {
		return fmt.Errorf("%w: site %s url must start with http:// or https://", model.ErrInvalidConfig, site.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.registry.Sites {
		if s.registry.Sites[i].Name == site.Name {
			s.registry.Sites[i] = site
			return nil
		}
	}
	s.registry.Sites = append(s.registry.Sites, site)
	return nil
}

// Remove deletes the named site
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, site := range s.registry.Sites {
		if site.Name == name {
			s.registry.Sites = append(s.registry.Sites[:i], s.registry.Sites[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", model.ErrSiteNotFound, name)
}

func emptyRegistry() model.SiteRegistry {
	return model.SiteRegistry{
		APIVersion: model.APIVersion,
		Kind:       model.KindSiteRegistry,
		Sites:      []model.Site{},
	}
}
