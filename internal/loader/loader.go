package loader

import (
	"fmt"
	"os"

	"github.com/sourceplane/udpublish/internal/model"
	"github.com/sourceplane/udpublish/internal/schema"
	"gopkg.in/yaml.v3"
)

// LoadRunDocument loads, validates and parses a run YAML file
func LoadRunDocument(path string) (*model.RunDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	doc, err := ParseRunDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseRunDocument validates data against the run schema and decodes it
func ParseRunDocument(data []byte) (*model.RunDocument, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	generic, err := schema.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateRun(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}

	var doc model.RunDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse run YAML: %w", err)
	}

	return &doc, nil
}

// LoadSiteRegistry loads, validates and parses a site registry YAML file
func LoadSiteRegistry(path string) (*model.SiteRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site registry: %w", err)
	}

	registry, err := ParseSiteRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return registry, nil
}

// ParseSiteRegistry validates data against the site registry schema and decodes it
func ParseSiteRegistry(data []byte) (*model.SiteRegistry, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	generic, err := schema.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateSiteRegistry(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}

	var registry model.SiteRegistry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse site registry YAML: %w", err)
	}

	seen := make(map[string]bool, len(registry.Sites))
	for _, site := range registry.Sites {
		if seen[site.Name] {
			return nil, fmt.Errorf("%w: duplicate site name %q", model.ErrInvalidConfig, site.Name)
		}
		seen[site.Name] = true
	}

	return &registry, nil
}
