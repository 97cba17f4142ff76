package credentials

import (
	"errors"
	"testing"

	"github.com/sourceplane/udpublish/internal/model"
	"github.com/zalando/go-keyring"
)

func TestStoreLookupDelete(t *testing.T) {
	keyring.MockInit()

	if _, err := Lookup("prod", "admin"); !errors.Is(err, ErrNoPassword) {
		t.Fatalf("Lookup before Store err = %v", err)
	}
	if err := Store("prod", "admin", "s3cret"); err != nil {
		t.Fatal(err)
	}
	got, err := Lookup("prod", "admin")
	if err != nil || got != "s3cret" {
		t.Fatalf("Lookup = %q, %v", got, err)
	}
	if _, err := Lookup("dev", "admin"); !errors.Is(err, ErrNoPassword) {
		t.Fatalf("Lookup on other site err = %v", err)
	}
	if err := Delete("prod", "admin"); err != nil {
		t.Fatal(err)
	}
	if err := Delete("prod", "admin"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestResolve(t *testing.T) {
	keyring.MockInit()
	if err := Store("prod", "svc", "from-keyring"); err != nil {
		t.Fatal(err)
	}

	site := model.Site{Name: "prod", User: "svc", AdminUser: true}

	tests := []struct {
		name        string
		site        model.Site
		altUser     string
		altPassword string
		altAdmin    bool
		env         string
		want        Identity
		wantErr     error
	}{
		{
			name: "site password",
			site: model.Site{Name: "prod", User: "svc", Password: "inline"},
			want: Identity{User: "svc", Password: "inline"},
		},
		{
			name: "keyring fallback",
			site: site,
			want: Identity{User: "svc", Password: "from-keyring", Admin: true},
		},
		{
			name: "env beats keyring",
			site: site,
			env:  "from-env",
			want: Identity{User: "svc", Password: "from-env", Admin: true},
		},
		{
			name:        "alt user wins",
			site:        site,
			altUser:     "bob",
			altPassword: "pw",
			want:        Identity{User: "bob", Password: "pw", Alt: true},
		},
		{
			name:        "alt admin flag",
			site:        site,
			altUser:     "root",
			altPassword: "pw",
			altAdmin:    true,
			want:        Identity{User: "root", Password: "pw", Admin: true, Alt: true},
		},
		{
			name:    "alt user without password",
			site:    site,
			altUser: "bob",
			wantErr: ErrNoPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(PasswordEnv, tt.env)
			got, err := Resolve(tt.site, tt.altUser, tt.altPassword, tt.altAdmin)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %+v, want %+v", got, tt.want)
			}
		})
	}
}
