package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sourceplane/udpublish/internal/model"
)

const registryYAML = `apiVersion: udpublish.sourceplane.io/v1
kind: SiteRegistry
sites:
  - name: prod
    url: https://ucd.example.com:8443
    user: admin
    adminUser: true
  - name: dev
    url: http://ucd-dev:8080
    user: ci
    trustAllCerts: true
`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_SiteLookup(t *testing.T) {
	store, err := Load(writeRegistry(t, registryYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	first, err := store.Site("")
	if err != nil || first.Name != "prod" {
		t.Fatalf("Site(\"\") = %+v, %v; want prod", first, err)
	}

	dev, err := store.Site("dev")
	if err != nil || !dev.TrustAllCerts {
		t.Fatalf("Site(dev) = %+v, %v", dev, err)
	}

	if _, err := store.Site("staging"); !errors.Is(err, model.ErrSiteNotFound) {
		t.Fatalf("Site(staging) err = %v, want ErrSiteNotFound", err)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "absent", "sites.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(store.Sites()) != 0 {
		t.Fatalf("Sites() = %v, want empty", store.Sites())
	}
	if _, err := store.Site(""); !errors.Is(err, model.ErrSiteNotFound) {
		t.Fatalf("Site(\"\") err = %v, want ErrSiteNotFound", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeRegistry(t, "apiVersion: udpublish.sourceplane.io/v1\nkind: SiteRegistry\nsites:\n  - name: x\n"))
	if !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestPutRemoveSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "sites.yaml")
	store := NewStore(path)

	if err := store.Put(model.Site{Name: "prod", URL: "https://a", User: "u1"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(model.Site{Name: "dev", URL: "https://b", User: "u2"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(model.Site{Name: "prod", URL: "https://c", User: "u3"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(model.Site{Name: "broken"}); !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("Put without url err = %v", err)
	}
	if err := store.Remove("dev"); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove("dev"); !errors.Is(err, model.ErrSiteNotFound) {
		t.Fatalf("second Remove err = %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	sites := reloaded.Sites()
	if len(sites) != 1 || sites[0].URL != "https://c" || sites[0].User != "u3" {
		t.Fatalf("sites = %+v", sites)
	}
}

func TestReload(t *testing.T) {
	path := writeRegistry(t, registryYAML)
	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("apiVersion: udpublish.sourceplane.io/v1\nkind: SiteRegistry\nsites: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if len(store.Sites()) != 2 {
		t.Fatal("store changed before Reload")
	}
	if err := store.Reload(); err != nil {
		t.Fatal(err)
	}
	if len(store.Sites()) != 0 {
		t.Fatalf("Sites() after Reload = %v", store.Sites())
	}
}
