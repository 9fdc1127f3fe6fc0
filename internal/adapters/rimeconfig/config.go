// Package rimeconfig reads and edits engine configuration files in YAML.
//
// Values are addressed with slash-separated paths such as
// "style/color_scheme" or "schema_list/@0/schema", following the engine's
// own path syntax where "@n" indexes a list.
package rimeconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is a parsed configuration document.
// It implements ports.Configuration and is not safe for concurrent mutation.
type Config struct {
	root map[string]interface{}
}

// Parse decodes a YAML document. An empty document yields an empty config.
func Parse(data []byte) (*Config, error) {
	var root map[string]interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("rimeconfig: parse: %w", err)
	}
	if root == nil {
		root = make(map[string]interface{})
	}
	return &Config{root: root}, nil
}

// LoadFile reads and parses the YAML file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rimeconfig: load %s: %w", path, err)
	}
	return Parse(data)
}

// New returns an empty configuration.
func New() *Config {
	return &Config{root: make(map[string]interface{})}
}

// Bytes encodes the configuration as YAML.
func (c *Config) Bytes() ([]byte, error) {
	return yaml.Marshal(c.root)
}

// Get returns the raw value at path.
func (c *Config) Get(path string) (interface{}, bool) {
	var cur interface{} = c.root
	for _, key := range splitPath(path) {
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = v
		case []interface{}:
			i, ok := listIndex(key, len(node))
			if !ok {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// GetString returns the scalar at path formatted as a string.
func (c *Config) GetString(path string) (string, bool) {
	v, ok := c.Get(path)
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}

// GetBool returns the boolean at path.
func (c *Config) GetBool(path string) (bool, bool) {
	v, ok := c.Get(path)
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	default:
		return false, false
	}
}

// GetInt returns the integer at path. Strings are parsed with base prefixes,
// so "0xFFFFFF" is accepted.
func (c *Config) GetInt(path string) (int, bool) {
	v, ok := c.Get(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 0, 64)
		return int(parsed), err == nil
	default:
		return 0, false
	}
}

// GetDouble returns the number at path.
func (c *Config) GetDouble(path string) (float64, bool) {
	v, ok := c.Get(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

// GetMap returns the mapping at path.
func (c *Config) GetMap(path string) (map[string]interface{}, bool) {
	v, ok := c.Get(path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	return m, ok
}

// Set stores value at path, creating intermediate mappings.
// List elements can be replaced with "@n" but lists are never grown.
func (c *Config) Set(path string, value interface{}) error {
	keys := splitPath(path)
	if len(keys) == 0 {
		m, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("rimeconfig: root must be a mapping")
		}
		c.root = m
		return nil
	}

	var cur interface{} = c.root
	for i, key := range keys {
		last := i == len(keys)-1
		switch node := cur.(type) {
		case map[string]interface{}:
			if last {
				node[key] = value
				return nil
			}
			next, ok := node[key]
			if !ok || !isContainer(next) {
				next = make(map[string]interface{})
				node[key] = next
			}
			cur = next
		case []interface{}:
			idx, ok := listIndex(key, len(node))
			if !ok {
				return fmt.Errorf("rimeconfig: %s: bad list index %q", path, key)
			}
			if last {
				node[idx] = value
				return nil
			}
			cur = node[idx]
		default:
			return fmt.Errorf("rimeconfig: %s: %q is not a container", path, key)
		}
	}
	return nil
}

func isContainer(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	default:
		return false
	}
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// listIndex resolves "@n" and "@last" keys against a list of length n.
func listIndex(key string, n int) (int, bool) {
	if !strings.HasPrefix(key, "@") {
		return 0, false
	}
	if key == "@last" {
		return n - 1, n > 0
	}
	i, err := strconv.Atoi(key[1:])
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
