package npm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/matzehuels/licensebat/pkg/integrations"
)

func TestClient_FetchPackument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/left-pad":
			w.Write([]byte(`{"name":"left-pad","license":"WTFPL","versions":{"1.3.0":{"license":"MIT"}}}`))
		case "/@babel%2fcore":
			w.Write([]byte(`{"name":"@babel/core","versions":{"7.0.0":{"license":"MIT"}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(server)

	doc, err := c.FetchPackument(context.Background(), "left-pad")
	if err != nil {
		t.Fatalf("FetchPackument failed: %v", err)
	}
	if got := doc.DeclaredLicenses("1.3.0"); !reflect.DeepEqual(got, []string{"MIT"}) {
		t.Errorf("DeclaredLicenses = %v, want [MIT]", got)
	}

	scoped, err := c.FetchPackument(context.Background(), "@babel/core")
	if err != nil {
		t.Fatalf("FetchPackument(scoped) failed: %v", err)
	}
	if scoped.Name != "@babel/core" {
		t.Errorf("Name = %q, want @babel/core", scoped.Name)
	}
}

func TestClient_FetchPackument_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(server).FetchPackument(context.Background(), "nonexistent")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEscapeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"left-pad", "left-pad"},
		{"@babel/core", "@babel%2fcore"},
		{"@types/node", "@types%2fnode"},
	}
	for _, tt := range tests {
		if got := EscapeName(tt.in); got != tt.want {
			t.Errorf("EscapeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeclaredLicenses(t *testing.T) {
	tests := []struct {
		name    string
		doc     Packument
		version string
		want    []string
	}{
		{
			name:    "version string",
			doc:     Packument{Versions: map[string]VersionDetails{"1.0.0": {License: "MIT"}}},
			version: "1.0.0",
			want:    []string{"MIT"},
		},
		{
			name: "version object",
			doc: Packument{Versions: map[string]VersionDetails{
				"1.0.0": {License: map[string]any{"type": "ISC", "url": "https://x"}},
			}},
			version: "1.0.0",
			want:    []string{"ISC"},
		},
		{
			name: "legacy licenses objects",
			doc: Packument{Versions: map[string]VersionDetails{
				"1.0.0": {Licenses: []any{
					map[string]any{"type": "MIT"},
					map[string]any{"type": "Apache-2.0"},
				}},
			}},
			version: "1.0.0",
			want:    []string{"MIT", "Apache-2.0"},
		},
		{
			name: "legacy licenses strings",
			doc: Packument{Versions: map[string]VersionDetails{
				"1.0.0": {Licenses: []any{"BSD-3-Clause"}},
			}},
			version: "1.0.0",
			want:    []string{"BSD-3-Clause"},
		},
		{
			name: "version wins over package",
			doc: Packument{
				License:  "WTFPL",
				Versions: map[string]VersionDetails{"1.0.0": {License: "MIT"}},
			},
			version: "1.0.0",
			want:    []string{"MIT"},
		},
		{
			name: "package fallback",
			doc: Packument{
				License:  map[string]any{"type": "BSD-2-Clause"},
				Versions: map[string]VersionDetails{"1.0.0": {}},
			},
			version: "1.0.0",
			want:    []string{"BSD-2-Clause"},
		},
		{
			name:    "unknown version falls back to package",
			doc:     Packument{License: "MIT"},
			version: "9.9.9",
			want:    []string{"MIT"},
		},
		{
			name:    "unsupported shape",
			doc:     Packument{License: 42.0},
			version: "1.0.0",
			want:    nil,
		},
		{
			name:    "empty string",
			doc:     Packument{Versions: map[string]VersionDetails{"1.0.0": {License: "  "}}},
			version: "1.0.0",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.DeclaredLicenses(tt.version); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeclaredLicenses(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func testClient(server *httptest.Server) *Client {
	return NewClient(integrations.NewClient(nil).WithHTTPClient(server.Client()), server.URL)
}
