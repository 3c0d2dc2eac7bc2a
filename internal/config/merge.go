package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyMode     = "mode"
	keyFallback = "fallback"
	keyAPI      = "api"
	keyFixtures = "fixtures"
	keyOutput   = "output"
	keyLogging  = "logging"
	keyServer   = "server"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyMode:     true,
	keyFallback: true,
	keyAPI:      true,
	keyFixtures: true,
	keyOutput:   true,
	keyLogging:  true,
	keyServer:   true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes one section into a fresh zero value and assigns
// it, so the overlay replaces the section rather than merging into it.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyMode:
		var v string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Mode = v
	case keyFallback:
		var v bool
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Fallback = &v
	case keyAPI:
		var v APIConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.API = v
	case keyFixtures:
		var v FixturesConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Fixtures = v
	case keyOutput:
		var v OutputConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		var v LoggingConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Logging = v
	case keyServer:
		var v ServerConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Server = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
