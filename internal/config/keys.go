package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Get returns the value at a dotted key such as "api.base_url".
func (c *Config) Get(key string) (interface{}, error) {
	tree, err := c.tree()
	if err != nil {
		return nil, err
	}

	var node interface{} = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		node, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
	}
	return node, nil
}

// Set parses value as a YAML scalar, stores it at a dotted key and
// validates the result. The config is unchanged on error.
func (c *Config) Set(key, value string) error {
	tree, err := c.tree()
	if err != nil {
		return err
	}

	parts := strings.Split(key, ".")
	parent := tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := parent[part].(map[string]interface{})
		if !ok {
			return fmt.Errorf("unknown config key: %s", key)
		}
		parent = next
	}
	leaf := parts[len(parts)-1]
	if _, ok := parent[leaf]; !ok && key != "fallback" {
		return fmt.Errorf("unknown config key: %s", key)
	}

	var parsed interface{}
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	parent[leaf] = parsed

	data, err := yaml.Marshal(tree)
	if err != nil {
		return err
	}
	updated := Default()
	if err := yaml.Unmarshal(data, updated); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	updated.configPath = c.configPath
	*c = *updated
	return nil
}

func (c *Config) tree() (map[string]interface{}, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return tree, nil
}
