package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kayz/promptkit/internal/definition"
	"github.com/kayz/promptkit/internal/logger"
	"github.com/kayz/promptkit/pkg/promptbuild"
	"gopkg.in/yaml.v3"
)

// loadDefinition resolves a definition name against the configured
// definitions directory and loads it.
func loadDefinition(name string) (*definition.Definition, error) {
	path := definition.Resolve(cfg.Definitions.Dir, name)
	return definition.Load(path)
}

// loadParams reads parameters from a YAML or JSON file and applies
// key=value overrides on top. Override values are decoded as YAML scalars,
// so "age=30" yields a number and "name=Ann" a string.
func loadParams(path string, sets []string) (promptbuild.Params, error) {
	params := promptbuild.Params{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read params: %w", err)
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("parse params %s: %w", path, err)
		}
		if params == nil {
			params = promptbuild.Params{}
		}
	}
	for _, kv := range sets {
		key, value, err := parseSet(kv)
		if err != nil {
			return nil, err
		}
		params[key] = value
	}
	logger.Debug("Loaded %d parameters", len(params))
	return params, nil
}

func parseSet(kv string) (string, any, error) {
	key, raw, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid --set %q: expected key=value", kv)
	}
	if raw == "" {
		return key, "", nil
	}
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return key, raw, nil
	}
	switch value.(type) {
	case map[string]any, []any:
		// Only scalars are decoded; structured values need a params file.
		return key, raw, nil
	}
	return key, value, nil
}
