package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LaunchCommand is the catalog name reserved for application launches.
// The resolver maps verb-prefixed utterances ("open chrome") onto it,
// and skills read its "app"/"url"/"action" parameters.
const LaunchCommand = "open-app"

// Command is one operator-defined catalog entry. Name is the command's
// identity; commands are compared by name everywhere.
type Command struct {
	Name    string   `yaml:"name"`
	Exec    string   `yaml:"exec,omitempty"`
	WorkDir string   `yaml:"workdir,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// Catalog holds commands in file order. Order is user-visible: numbered
// listings and numeric selection both follow it.
type Catalog struct {
	Commands []Command `yaml:"commands"`
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse expands env vars, parses, and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	expanded := os.ExpandEnv(string(data))

	var c Catalog
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var errs []error

	if len(c.Commands) == 0 {
		errs = append(errs, errors.New("catalog must define at least one command"))
	}

	seen := make(map[string]bool, len(c.Commands))
	for i, cmd := range c.Commands {
		name := strings.TrimSpace(cmd.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("command %d has an empty name", i+1))
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate command name %q", name))
		}
		seen[key] = true
	}

	return errors.Join(errs...)
}

// Get returns the 1-based i'th command, for numeric selection.
func (c *Catalog) Get(i int) (Command, bool) {
	if i < 1 || i > len(c.Commands) {
		return Command{}, false
	}
	return c.Commands[i-1], true
}
