package model

// SiteRegistry is the persisted list of configured release-automation servers
type SiteRegistry struct {
	APIVersion string `yaml:"apiVersion" json:"apiVersion"`
	Kind       string `yaml:"kind" json:"kind"`
	Sites      []Site `yaml:"sites" json:"sites"`
}

// Site is a single configured server profile
type Site struct {
	Name          string `yaml:"name" json:"name"`
	URL           string `yaml:"url" json:"url"`
	User          string `yaml:"user" json:"user"`
	Password      string `yaml:"password,omitempty" json:"password,omitempty"` // empty: resolved from keyring
	AdminUser     bool   `yaml:"adminUser,omitempty" json:"adminUser,omitempty"`
	TrustAllCerts bool   `yaml:"trustAllCerts,omitempty" json:"trustAllCerts,omitempty"`
}

const (
	APIVersion       = "udpublish.sourceplane.io/v1"
	KindSiteRegistry = "SiteRegistry"
	KindPublishRun   = "PublishRun"
	KindResult       = "PublishResult"
)
