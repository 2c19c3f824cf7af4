package rubygems

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/matzehuels/licensebat/pkg/integrations"
)

func TestClient_FetchVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rubygems/rails/versions/7.1.2.json":
			json.NewEncoder(w).Encode(versionResponse{
				Name:     "rails",
				Version:  "7.1.2",
				Licenses: []string{"MIT"},
			})
		case "/rubygems/nolicense/versions/0.1.0.json":
			json.NewEncoder(w).Encode(versionResponse{
				Name:     "nolicense",
				Version:  "0.1.0",
				Licenses: []string{"", " "},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(server)

	info, err := c.FetchVersion(context.Background(), "rails", "7.1.2")
	if err != nil {
		t.Fatalf("FetchVersion failed: %v", err)
	}
	if !reflect.DeepEqual(info.Licenses, []string{"MIT"}) {
		t.Errorf("Licenses = %v, want [MIT]", info.Licenses)
	}

	empty, err := c.FetchVersion(context.Background(), "nolicense", "0.1.0")
	if err != nil {
		t.Fatalf("FetchVersion failed: %v", err)
	}
	if empty.Licenses != nil {
		t.Errorf("blank licenses should be dropped, got %v", empty.Licenses)
	}
}

func TestClient_FetchVersion_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(server).FetchVersion(context.Background(), "missing", "1.0.0")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testClient(server *httptest.Server) *Client {
	return NewClient(integrations.NewClient(nil).WithHTTPClient(server.Client()), server.URL)
}
