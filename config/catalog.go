package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/upb/llm-router/services"
	"github.com/upb/llm-router/services/classifier"
)

// Catalog is the static YAML document at CONFIG_PATH. It is read once at
// startup; the models value is served verbatim by GET /models.
type Catalog struct {
	// Models is the decoded "models" value in whatever shape the file gives it
	Models interface{} `yaml:"models"`

	Classifier *classifier.Ruleset `yaml:"classifier"`

	// Path is the file the catalog was read from
	Path string `yaml:"-"`
	// Found reports whether the file existed
	Found bool `yaml:"-"`
}

// LoadCatalog reads the model catalog from path.
// A missing file yields an empty catalog with Found unset so the caller can
// warn; an unreadable or malformed file is a config error.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := &Catalog{
		Models: map[string]interface{}{},
		Path:   path,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return catalog, nil
	}
	if err != nil {
		return nil, services.NewConfigError(fmt.Sprintf("failed to read catalog file %q", path), err)
	}
	catalog.Found = true

	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, services.NewConfigError(fmt.Sprintf("failed to parse catalog file %q", path), err)
	}

	// An empty "models:" key decodes to nil
	if catalog.Models == nil {
		catalog.Models = map[string]interface{}{}
	}
	catalog.Models = jsonSafe(catalog.Models)

	return catalog, nil
}

// ModelCount returns the number of entries in the models value
func (c *Catalog) ModelCount() int {
	if c == nil {
		return 0
	}
	switch m := c.Models.(type) {
	case map[string]interface{}:
		return len(m)
	case []interface{}:
		return len(m)
	case nil:
		return 0
	}
	return 1
}

// Ruleset returns the classifier keyword lists, with the catalog override
// layered over the built-in defaults
func (c *Catalog) Ruleset() classifier.Ruleset {
	if c == nil || c.Classifier == nil {
		return classifier.DefaultRuleset()
	}
	return c.Classifier.Merge(classifier.DefaultRuleset())
}

// jsonSafe rewrites mappings with non-string keys, which encoding/json
// cannot marshal, into string-keyed maps
func jsonSafe(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, item := range t {
			t[k] = jsonSafe(item)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = jsonSafe(item)
		}
		return out
	case []interface{}:
		for i, item := range t {
			t[i] = jsonSafe(item)
		}
		return t
	}
	return v
}
