package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaNode is the part of a json schema used for verification
type schemaNode struct {
	Ref        string                `json:"$ref"`
	Defs       map[string]schemaNode `json:"$defs"`
	Properties map[string]schemaNode `json:"properties"`
	Items      *schemaNode           `json:"items"`
	Minimum    *json.Number          `json:"minimum"`
	Maximum    *json.Number          `json:"maximum"`
	Enum       []any                 `json:"enum"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Every config field must be declared by the schema, numeric fields must fit schema bounds
// and enum fields must have one of the listed values.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var root schemaNode
	if err := json.Unmarshal([]byte(embeddedSchema), &root); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := verifyNode(root, root, "", configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func verifyNode(root, node schemaNode, path string, value any) error {
	if node.Ref != "" {
		def, ok := root.Defs[strings.TrimPrefix(node.Ref, "#/$defs/")]
		if !ok {
			return fmt.Errorf("%s: unknown schema reference %s", pathName(path), node.Ref)
		}
		node = def
	}

	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			prop, ok := node.Properties[k]
			if !ok {
				return fmt.Errorf("%s is not declared in schema", joinPath(path, k))
			}
			if err := verifyNode(root, prop, joinPath(path, k), v[k]); err != nil {
				return err
			}
		}
	case []any:
		if node.Items == nil {
			return nil
		}
		for i, item := range v {
			if err := verifyNode(root, *node.Items, fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case float64:
		if node.Minimum != nil {
			if lim, err := node.Minimum.Float64(); err == nil && v < lim {
				return fmt.Errorf("%s must be at least %v", path, node.Minimum)
			}
		}
		if node.Maximum != nil {
			if lim, err := node.Maximum.Float64(); err == nil && v > lim {
				return fmt.Errorf("%s must be at most %v", path, node.Maximum)
			}
		}
	case string:
		if len(node.Enum) > 0 && !enumContains(node.Enum, v) {
			return fmt.Errorf("%s has unexpected value %q", path, v)
		}
	}
	return nil
}

func enumContains(enum []any, v string) bool {
	for _, e := range enum {
		if s, ok := e.(string); ok && s == v {
			return true
		}
	}
	return false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathName(path string) string {
	if path == "" {
		return "config"
	}
	return path
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return errors.New("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return errors.New("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if cfg.Schedule.RefreshInterval == 0 {
		return errors.New("schedule.refresh_interval is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
