package deps

import (
	"cmp"
	"slices"
)

// NoLicense is the license reported for a dependency whose registry entry
// declares none. Policies can allow it like any other identifier.
const NoLicense = "NO-LICENSE"

// NoLicenseHint is the removable comment attached to NO-LICENSE records.
const NoLicenseHint = "Consider **ignoring** this specific dependency. " +
	"You can also accept the **NO-LICENSE** key to avoid these issues."

// Dependency is a name/version pair declared by a lockfile.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// String returns name@version.
func (d Dependency) String() string { return d.Name + "@" + d.Version }

// Comment is a note attached to a record for the reader of a report.
// A removable comment is a remediation hint that renderers may drop once
// the user acted on it.
type Comment struct {
	Text      string `json:"text"`
	Removable bool   `json:"removable"`
}

// RetrievedDependency is the uniform license record produced for every
// dependency of a lockfile, whatever its ecosystem.
//
// Invariants:
//   - Validated is only set by a policy, exactly once.
//   - Error != nil implies IsValid == false.
//   - A failed registry call leaves Licenses nil.
//   - A registry entry without license yields [NoLicense] and a removable Comment.
type RetrievedDependency struct {
	Name           string   `json:"name"`
	Version        string   `json:"version"`
	URL            *string  `json:"url"`
	DependencyType string   `json:"dependency_type"`
	Validated      bool     `json:"validated"`
	IsValid        bool     `json:"is_valid"`
	IsIgnored      bool     `json:"is_ignored"`
	Error          *string  `json:"error"`
	Licenses       []string `json:"licenses"`
	Comment        *Comment `json:"comment"`
}

// Dependency returns the name/version pair of the record.
func (r *RetrievedDependency) Dependency() Dependency {
	return Dependency{Name: r.Name, Version: r.Version}
}

// NewRetrieved builds the record for dep. Retrievers call it with either
// the resolved licenses or the error of the registry call, and it takes
// care of the record invariants:
//
//   - err != nil: Error holds err's text, Licenses is nil, IsValid is false.
//   - no licenses: Licenses is [NoLicense] with a removable hint, IsValid is false.
//   - otherwise: IsValid is true until a policy says otherwise.
//
// An empty url leaves URL nil.
func NewRetrieved(dep Dependency, ecosystem, url string, licenses []string, err error) RetrievedDependency {
	rec := RetrievedDependency{
		Name:           dep.Name,
		Version:        dep.Version,
		DependencyType: ecosystem,
	}
	if url != "" {
		rec.URL = &url
	}

	switch {
	case err != nil:
		msg := err.Error()
		rec.Error = &msg
	case len(licenses) == 0:
		rec.Licenses = []string{NoLicense}
		rec.Comment = &Comment{Text: NoLicenseHint, Removable: true}
	default:
		rec.Licenses = licenses
		rec.IsValid = true
	}
	return rec
}

// SortByName orders records by name, then version. Streams deliver records
// in completion order; callers that need stable output sort first.
func SortByName(recs []RetrievedDependency) {
	slices.SortStableFunc(recs, func(a, b RetrievedDependency) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Version, b.Version))
	})
}

// Sort orders dependencies by name, then version. Collectors backed by
// maps use it to hand out a deterministic list.
func Sort(list []Dependency) {
	slices.SortFunc(list, func(a, b Dependency) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Version, b.Version))
	})
}

// Unique drops repeated name@version pairs, keeping the first occurrence.
// Lockfiles list the same package once per install location; licenses are
// checked once per version.
func Unique(list []Dependency) []Dependency {
	seen := make(map[Dependency]bool, len(list))
	out := list[:0:0]
	for _, d := range list {
		if d.Name == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
