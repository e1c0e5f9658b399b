// Package fixture loads YAML-described disambiguation scenarios from
// testdata/ and turns them into style.Style, disambtoken.Reference, and
// expectation data, so new cases can be added without touching Go code.
//
// Grounded on original_source's human-readable YAML test format
// (test_utils::yaml::parse_yaml_test in citeproc-rs): a scenario names a
// style fragment, a handful of references, and a list of cases asserting
// which renderings a reference's Dfa should and shouldn't accept.
package fixture

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/coregx/csldisamb/disambtoken"
	"github.com/coregx/csldisamb/style"
)

// Scenario is one fully-parsed testdata/*.yaml file.
type Scenario struct {
	Name       string
	Style      *style.Style
	References map[string]*disambtoken.Reference
	Cases      []Case
}

// Case is one assertion within a Scenario: building refID's Dfa should
// accept every string in Accepts and reject every string in Rejects, once
// each is tokenized as a single Output edge.
type Case struct {
	RefID    string
	Position style.Position
	Locator  string
	Accepts  []string
	Rejects  []string
}

// Load parses every *.yaml file under root (matched via a doublestar glob
// so subdirectories are picked up too) into Scenarios, sorted by filename.
func Load(root string) ([]Scenario, error) {
	fsys := os.DirFS(root)
	names, err := doublestar.Glob(fsys, "**/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("fixture: glob testdata: %w", err)
	}
	scenarios := make([]Scenario, 0, len(names))
	for _, name := range names {
		s, err := loadOne(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("fixture: %s: %w", name, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func loadOne(fsys fs.FS, name string) (Scenario, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Scenario{}, err
	}
	var doc yamlScenario
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Scenario{}, err
	}
	return doc.toScenario(), nil
}
