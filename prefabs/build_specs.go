package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ApplyOverrides layers per-spawn keys over a base archetype. Keys absent
// from overrides keep the base value.
func ApplyOverrides(base ArchetypeSpec, overrides map[string]any) (ArchetypeSpec, error) {
	if len(overrides) == 0 {
		return base, nil
	}
	b, err := yaml.Marshal(overrides)
	if err != nil {
		return base, fmt.Errorf("prefabs: overrides for %s: %w", base.Name, err)
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, fmt.Errorf("prefabs: overrides for %s: %w", base.Name, err)
	}
	return out, nil
}
