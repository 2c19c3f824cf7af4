package javascript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/licensebat/pkg/deps"
	"github.com/matzehuels/licensebat/pkg/integrations"
	"github.com/matzehuels/licensebat/pkg/integrations/npm"
)

func TestRetriever_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/left-pad":
			w.Write([]byte(`{"name":"left-pad","versions":{"1.3.0":{"license":"MIT"}}}`))
		case "/dual":
			w.Write([]byte(`{"name":"dual","versions":{"1.0.0":{"license":"(MIT OR Apache-2.0)"}}}`))
		case "/unlicensed":
			w.Write([]byte(`{"name":"unlicensed","versions":{"0.1.0":{}}}`))
		case "/@scope%2fpkg":
			w.Write([]byte(`{"name":"@scope/pkg","license":{"type":"ISC"}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	r := testRetriever(server)
	ctx := context.Background()

	t.Run("resolved", func(t *testing.T) {
		rec := r.Fetch(ctx, deps.Dependency{Name: "left-pad", Version: "1.3.0"})
		if !reflect.DeepEqual(rec.Licenses, []string{"MIT"}) {
			t.Errorf("Licenses = %v, want [MIT]", rec.Licenses)
		}
		if !rec.IsValid || rec.Error != nil {
			t.Errorf("IsValid = %v, Error = %v", rec.IsValid, rec.Error)
		}
		if rec.URL == nil || *rec.URL != "https://www.npmjs.com/package/left-pad/v/1.3.0" {
			t.Errorf("URL = %v", rec.URL)
		}
		if rec.DependencyType != "npm" {
			t.Errorf("DependencyType = %q, want npm", rec.DependencyType)
		}
	})

	t.Run("compound", func(t *testing.T) {
		rec := r.Fetch(ctx, deps.Dependency{Name: "dual", Version: "1.0.0"})
		if !reflect.DeepEqual(rec.Licenses, []string{"MIT", "Apache-2.0"}) {
			t.Errorf("Licenses = %v, want [MIT Apache-2.0]", rec.Licenses)
		}
	})

	t.Run("scoped package fallback", func(t *testing.T) {
		rec := r.Fetch(ctx, deps.Dependency{Name: "@scope/pkg", Version: "2.0.0"})
		if !reflect.DeepEqual(rec.Licenses, []string{"ISC"}) {
			t.Errorf("Licenses = %v, want [ISC]", rec.Licenses)
		}
	})

	t.Run("no license", func(t *testing.T) {
		rec := r.Fetch(ctx, deps.Dependency{Name: "unlicensed", Version: "0.1.0"})
		if !reflect.DeepEqual(rec.Licenses, []string{deps.NoLicense}) {
			t.Errorf("Licenses = %v, want [NO-LICENSE]", rec.Licenses)
		}
		if rec.Comment == nil || !rec.Comment.Removable {
			t.Errorf("Comment = %+v, want removable", rec.Comment)
		}
		if rec.Error != nil {
			t.Errorf("Error = %q, want nil", *rec.Error)
		}
	})

	t.Run("registry failure", func(t *testing.T) {
		rec := r.Fetch(ctx, deps.Dependency{Name: "foo", Version: "2.0.0"})
		if rec.Error == nil {
			t.Fatal("Error should be set")
		}
		if rec.Licenses != nil || rec.IsValid {
			t.Errorf("Licenses = %v, IsValid = %v", rec.Licenses, rec.IsValid)
		}
	})

	t.Run("invalid name never hits the registry", func(t *testing.T) {
		rec := r.Fetch(ctx, deps.Dependency{Name: "../../etc/passwd", Version: "1"})
		if rec.Error == nil || rec.IsValid {
			t.Errorf("expected error record, got %+v", rec)
		}
	})
}

func TestPackageLock_Collect(t *testing.T) {
	var calls atomic.Int32
	r := deps.RetrieverFunc(func(_ context.Context, d deps.Dependency) deps.RetrievedDependency {
		calls.Add(1)
		return deps.NewRetrieved(d, Ecosystem, "", []string{"MIT"}, nil)
	})

	c := NewPackageLock(r)
	if c.Name() != "npm" || c.DependencyFilename() != "package-lock.json" {
		t.Errorf("Name/DependencyFilename = %s/%s", c.Name(), c.DependencyFilename())
	}

	s, err := c.Collect(context.Background(), `{"lockfileVersion":1,"dependencies":{"left-pad":{"version":"1.3.0"}}}`)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	recs := s.Drain()
	if len(recs) != 1 || recs[0].Name != "left-pad" {
		t.Errorf("records = %+v", recs)
	}

	if _, err := c.Collect(context.Background(), `{"dependencies": [`); err == nil {
		t.Error("Collect should fail on malformed JSON")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("retriever called %d times, want 1", got)
	}
}

func testRetriever(server *httptest.Server) *Retriever {
	shared := integrations.NewClient(nil).WithHTTPClient(server.Client())
	return NewRetriever(npm.NewClient(shared, server.URL))
}
