// Package settings holds the runtime feature switches consulted by the
// account managers. Values come from built-in defaults, an optional YAML
// file and DOORMAN_<FEATURE>_ENABLED environment variables, in increasing
// order of precedence.
package settings

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FeatureSignup           = "signup"
	FeatureFirstUserAdmin   = "first_user_admin"
	FeatureLastAdminDisable = "last_admin_disable"
)

const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
)

// Flags answers whether a named feature is switched on. Implementations are
// read on every call so changes take effect without a restart.
type Flags interface {
	Enabled(feature string) bool
}

// Defaults returns the built-in value of every known feature.
func Defaults() map[string]bool {
	return map[string]bool{
		FeatureSignup:           true,
		FeatureFirstUserAdmin:   true,
		FeatureLastAdminDisable: false,
	}
}

// Known reports whether feature is one of the recognised switches.
func Known(feature string) bool {
	_, ok := Defaults()[feature]
	return ok
}

// Feature is one entry of the settings file:
//
//	signup:
//	  enabled: false
type Feature struct {
	Enabled bool `yaml:"enabled"`
}

// Parse decodes a settings document. Unknown features are rejected so a
// typo does not silently leave a default in place.
func Parse(data []byte) (map[string]bool, error) {
	var doc map[string]Feature
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("settings: parse: %w", err)
	}

	values := make(map[string]bool, len(doc))
	for name, f := range doc {
		if !Known(name) {
			return nil, fmt.Errorf("settings: unknown feature %q", name)
		}
		values[name] = f.Enabled
	}
	return values, nil
}

// EnvKey is the environment variable overriding feature.
func EnvKey(feature string) string {
	return "DOORMAN_" + strings.ToUpper(feature) + "_ENABLED"
}

func envOverride(feature string) (bool, bool) {
	raw, ok := os.LookupEnv(EnvKey(feature))
	if !ok || raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Attribute is a resolved feature value together with where it came from.
type Attribute struct {
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Source  string `json:"source" yaml:"source"`
}

func sortedAttributes(values map[string]bool, sources map[string]string) []Attribute {
	attrs := make([]Attribute, 0, len(values))
	for name, v := range values {
		attrs = append(attrs, Attribute{Name: name, Enabled: v, Source: sources[name]})
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	return attrs
}

// Static is a fixed set of switches. Missing features fall back to their
// default.
type Static map[string]bool

func (s Static) Enabled(feature string) bool {
	if v, ok := s[feature]; ok {
		return v
	}
	return Defaults()[feature]
}
