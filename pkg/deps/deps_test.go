package deps

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRetrieved(t *testing.T) {
	dep := Dependency{Name: "left-pad", Version: "1.3.0"}

	t.Run("resolved", func(t *testing.T) {
		rec := NewRetrieved(dep, "npm", "https://example.com", []string{"MIT"}, nil)
		if !rec.IsValid || rec.Error != nil {
			t.Errorf("resolved record: IsValid=%v Error=%v", rec.IsValid, rec.Error)
		}
		if rec.URL == nil || *rec.URL != "https://example.com" {
			t.Errorf("URL = %v", rec.URL)
		}
		if rec.Validated || rec.IsIgnored {
			t.Error("policy fields must start false")
		}
		if rec.DependencyType != "npm" {
			t.Errorf("DependencyType = %q", rec.DependencyType)
		}
	})

	t.Run("no license", func(t *testing.T) {
		rec := NewRetrieved(dep, "npm", "", nil, nil)
		if !reflect.DeepEqual(rec.Licenses, []string{NoLicense}) {
			t.Errorf("Licenses = %v, want [%s]", rec.Licenses, NoLicense)
		}
		if rec.Comment == nil || !rec.Comment.Removable {
			t.Errorf("Comment = %+v, want removable hint", rec.Comment)
		}
		if rec.Error != nil {
			t.Errorf("Error = %v, want nil", *rec.Error)
		}
		if rec.IsValid {
			t.Error("record without license must not be valid")
		}
		if rec.URL != nil {
			t.Error("empty url should leave URL nil")
		}
	})

	t.Run("failed", func(t *testing.T) {
		rec := NewRetrieved(dep, "npm", "", []string{"MIT"}, errors.New("boom"))
		if rec.Error == nil || *rec.Error != "boom" {
			t.Errorf("Error = %v, want boom", rec.Error)
		}
		if rec.Licenses != nil {
			t.Errorf("Licenses = %v, want nil", rec.Licenses)
		}
		if rec.IsValid {
			t.Error("failed record must not be valid")
		}
	})
}

func TestSortByName(t *testing.T) {
	recs := []RetrievedDependency{
		{Name: "b", Version: "1"},
		{Name: "a", Version: "2"},
		{Name: "a", Version: "1"},
	}
	SortByName(recs)
	var got []string
	for _, r := range recs {
		got = append(got, r.Dependency().String())
	}
	want := []string{"a@1", "a@2", "b@1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByName = %v, want %v", got, want)
	}
}

func TestUnique(t *testing.T) {
	in := []Dependency{
		{"a", "1"}, {"b", "1"}, {"a", "1"}, {"a", "2"}, {"", "1"},
	}
	want := []Dependency{{"a", "1"}, {"b", "1"}, {"a", "2"}}
	if got := Unique(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Unique = %v, want %v", got, want)
	}
}

func TestSplitLicenses(t *testing.T) {
	tests := []struct {
		name  string
		exprs []string
		seps  []string
		want  []string
	}{
		{"single", []string{"MIT"}, SPDX, []string{"MIT"}},
		{"or with parens", []string{"(MIT OR Apache-2.0)"}, SPDX, []string{"MIT", "Apache-2.0"}},
		{"lowercase or", []string{"MIT or Apache-2.0"}, SPDX, []string{"MIT", "Apache-2.0"}},
		{"and", []string{"BSD-3-Clause AND MIT"}, SPDX, []string{"BSD-3-Clause", "MIT"}},
		{"nested", []string{"MIT AND (BSD-2-Clause OR ISC)"}, SPDX, []string{"MIT", "BSD-2-Clause", "ISC"}},
		{"dedupe", []string{"MIT", "MIT OR ISC"}, SPDX, []string{"MIT", "ISC"}},
		{"trim and drop empties", []string{"  MIT  OR  ", ""}, SPDX, []string{"MIT"}},
		{"slash kept for spdx", []string{"MIT/Apache-2.0"}, SPDX, []string{"MIT/Apache-2.0"}},
		{"slash split for cargo", []string{"MIT/Apache-2.0"}, CargoLegacy, []string{"MIT", "Apache-2.0"}},
		{"no separators", []string{"GPL-3.0 OR MIT"}, nil, []string{"GPL-3.0 OR MIT"}},
		{"nothing", nil, SPDX, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLicenses(tt.exprs, tt.seps...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLicenses(%q) = %q, want %q", tt.exprs, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	npm := &stubCollector{name: "npm", file: "package-lock.json"}
	cargo := &stubCollector{name: "rust", file: "Cargo.lock"}

	tests := []struct {
		path     string
		wantName string
		wantOK   bool
	}{
		{"package-lock.json", "npm", true},
		{"web/app/package-lock.json", "npm", true},
		{"./Cargo.lock", "rust", true},
		{"Gemfile.lock", "", false},
		{"package.json", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, ok := Detect(tt.path, npm, cargo)
			if ok != tt.wantOK {
				t.Fatalf("Detect(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && c.Name() != tt.wantName {
				t.Errorf("Detect(%q) = %s, want %s", tt.path, c.Name(), tt.wantName)
			}
		})
	}
}

func TestDetectFirstRegisteredWins(t *testing.T) {
	a := &stubCollector{name: "first", file: "x.lock"}
	b := &stubCollector{name: "second", file: "x.lock"}
	for range 10 {
		c, _ := Detect("dir/x.lock", a, b)
		if c.Name() != "first" {
			t.Fatalf("Detect picked %s, want first", c.Name())
		}
	}
}

func TestFanoutOneRecordPerDependency(t *testing.T) {
	list := []Dependency{{"a", "1"}, {"b", "1"}, {"c", "1"}, {"boom", "1"}}
	r := RetrieverFunc(func(_ context.Context, d Dependency) RetrievedDependency {
		if d.Name == "boom" {
			panic("registry client bug")
		}
		return NewRetrieved(d, "test", "", []string{"MIT"}, nil)
	})

	recs := Fanout(context.Background(), "test", list, r).Drain()
	if len(recs) != len(list) {
		t.Fatalf("got %d records, want %d", len(recs), len(list))
	}
	for _, rec := range recs {
		if rec.Name == "boom" {
			if rec.Error == nil || rec.IsValid {
				t.Errorf("panicking retriever should yield an invalid error record, got %+v", rec)
			}
			if rec.DependencyType != "test" {
				t.Errorf("DependencyType = %q, want test", rec.DependencyType)
			}
		}
	}
}

func TestFanoutEmpty(t *testing.T) {
	r := RetrieverFunc(func(context.Context, Dependency) RetrievedDependency {
		t.Fatal("retriever should not be called")
		return RetrievedDependency{}
	})
	if recs := Fanout(context.Background(), "test", nil, r).Drain(); len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
}

func TestFanoutCompletionOrder(t *testing.T) {
	list := []Dependency{{"slow", "1"}, {"fast", "1"}}
	r := RetrieverFunc(func(_ context.Context, d Dependency) RetrievedDependency {
		if d.Name == "slow" {
			time.Sleep(100 * time.Millisecond)
		}
		return NewRetrieved(d, "test", "", []string{"MIT"}, nil)
	})

	recs := Fanout(context.Background(), "test", list, r).Drain()
	if recs[0].Name != "fast" {
		t.Errorf("first record = %s, want fast", recs[0].Name)
	}
}

func TestFanoutConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	r := RetrieverFunc(func(_ context.Context, d Dependency) RetrievedDependency {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return NewRetrieved(d, "test", "", []string{"MIT"}, nil)
	})

	var list []Dependency
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		list = append(list, Dependency{n, "1"})
	}

	ctx := WithConcurrency(context.Background(), 2)
	recs := Fanout(ctx, "test", list, r).Drain()
	if len(recs) != len(list) {
		t.Fatalf("got %d records, want %d", len(recs), len(list))
	}
	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
}

func TestFanoutAbandonedStreamDoesNotBlockProducers(t *testing.T) {
	var done atomic.Int32
	r := RetrieverFunc(func(_ context.Context, d Dependency) RetrievedDependency {
		defer done.Add(1)
		return NewRetrieved(d, "test", "", []string{"MIT"}, nil)
	})

	list := []Dependency{{"a", "1"}, {"b", "1"}, {"c", "1"}}
	s := Fanout(context.Background(), "test", list, r)
	<-s // consumer stops after one record

	deadline := time.Now().Add(time.Second)
	for done.Load() < int32(len(list)) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := done.Load(); got != int32(len(list)) {
		t.Errorf("%d of %d producers finished", got, len(list))
	}
}

type stubCollector struct {
	name string
	file string
}

func (s *stubCollector) Name() string               { return s.name }
func (s *stubCollector) DependencyFilename() string { return s.file }
func (s *stubCollector) Collect(context.Context, string) (Stream, error) {
	return Fanout(context.Background(), s.name, nil, nil), nil
}
