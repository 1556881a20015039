package config

import (
	"encoding/json"
	"fmt"
)

// fileEnvelope mirrors the shell's documented config-file format: a
// versioned wrapper around a partial, nested SimulationConfig. Fields
// outside Config are metadata the core does not interpret.
type fileEnvelope struct {
	Version     string          `json:"version"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ExportedAt  string          `json:"exportedAt"`
	Config      json.RawMessage `json:"config"`
}

// FromFile parses the shell's config-file envelope, merges any present
// fields onto Default(), clamps the result, and returns the validated
// configuration together with every warning produced along the way
// (unknown top-level config keys, out-of-range values, cross-field
// rescaling). The core never touches the filesystem itself; callers own
// reading the bytes.
func FromFile(data []byte) (SimulationConfig, []Warning, error) {
	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return SimulationConfig{}, nil, fmt.Errorf("config: parse envelope: %w", err)
	}

	merged := Default()
	var warnings []Warning

	if len(env.Config) > 0 {
		// Decode onto a copy of the defaults so missing keys keep their
		// default value; DisallowUnknownFields would reject the exact
		// case this function exists to tolerate, so unknown keys are
		// instead reported as warnings via a generic map pass.
		if err := json.Unmarshal(env.Config, &merged); err != nil {
			return SimulationConfig{}, nil, fmt.Errorf("config: parse config block: %w", err)
		}

		var generic map[string]json.RawMessage
		if err := json.Unmarshal(env.Config, &generic); err == nil {
			for key := range generic {
				if !knownTopLevelKey(key) {
					warnings = append(warnings, Warning{"config." + key, "unknown key ignored"})
				}
			}
		}
	}

	merged, validationWarnings := Validate(merged)
	warnings = append(warnings, validationWarnings...)
	return merged, warnings, nil
}

func knownTopLevelKey(key string) bool {
	switch key {
	case "world", "vegetation", "entities", "derived_stats", "movement",
		"reproduction", "evolution", "corpse", "performance", "ui":
		return true
	default:
		return false
	}
}
