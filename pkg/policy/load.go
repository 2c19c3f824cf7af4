package policy

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// Load reads a policy document. Files ending in .yaml or .yml use the YAML
// form; anything else (".licrc" in particular) is read as licrc TOML.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "policy file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPolicy, err, "read policy file %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseLicrc(data)
	}
}

// licrc is the TOML document:
//
//	[licenses]
//	accepted = ["MIT", "Apache-2.0"]   # or unaccepted = [...]
//
//	[dependencies]
//	ignored = ["left-pad", "foo@1.0.0"]
//
//	[behavior]
//	do_not_show_invalid_dependencies = false
type licrc struct {
	Licenses struct {
		Accepted   []string `toml:"accepted"`
		Unaccepted []string `toml:"unaccepted"`
	} `toml:"licenses"`
	Dependencies struct {
		Ignored []string `toml:"ignored"`
	} `toml:"dependencies"`
	Behavior struct {
		DoNotShowInvalidDependencies bool `toml:"do_not_show_invalid_dependencies"`
	} `toml:"behavior"`
}

// ParseLicrc parses a licrc document. An accepted list denies every other
// license; an unaccepted list allows every other license. Exactly one of
// the two must be present.
func ParseLicrc(data []byte) (*Policy, error) {
	var doc licrc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPolicy, err, "parse licrc")
	}

	accepted, unaccepted := doc.Licenses.Accepted, doc.Licenses.Unaccepted
	var p *Policy
	switch {
	case accepted != nil && unaccepted != nil:
		return nil, errs.New(errs.ErrCodeInvalidPolicy, "licrc: declare either accepted or unaccepted licenses, not both")
	case accepted != nil:
		p = New(Deny)
		for _, l := range accepted {
			p.Licenses[l] = Allow
		}
	case unaccepted != nil:
		p = New(Allow)
		for _, l := range unaccepted {
			p.Licenses[l] = Deny
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidPolicy, "licrc: [licenses] needs an accepted or unaccepted list")
	}

	for _, d := range doc.Dependencies.Ignored {
		p.Dependencies[d] = Ignore
	}
	p.HideInvalid = doc.Behavior.DoNotShowInvalidDependencies
	return p, nil
}

type yamlPolicy struct {
	Default      string            `yaml:"default"`
	Licenses     map[string]string `yaml:"licenses"`
	Dependencies map[string]string `yaml:"dependencies"`
	HideInvalid  bool              `yaml:"hide_invalid"`
}

// ParseYAML parses the native policy form:
//
//	default: deny
//	licenses: {MIT: allow, GPL-3.0: deny}
//	dependencies: {left-pad: ignore}
//
// A missing default means deny.
func ParseYAML(data []byte) (*Policy, error) {
	var doc yamlPolicy
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPolicy, err, "parse policy")
	}

	def := Deny
	if doc.Default != "" {
		o, err := ParseOutcome(doc.Default)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPolicy, err, "default")
		}
		def = o
	}

	p := New(def)
	p.HideInvalid = doc.HideInvalid
	for k, v := range doc.Licenses {
		o, err := ParseOutcome(v)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPolicy, err, "license %s", k)
		}
		p.Licenses[k] = o
	}
	for k, v := range doc.Dependencies {
		o, err := ParseOutcome(v)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPolicy, err, "dependency %s", k)
		}
		p.Dependencies[k] = o
	}
	return p, nil
}
