package shipping

import (
	"context"
	"fmt"
	"log"
)

// LoadTable reads a policy from loader and validates it.
func LoadTable(ctx context.Context, loader PolicyLoader) (*Table, error) {
	spec, version, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s policy: %w", loader.Source(), err)
	}

	table, err := NewTable(spec, version)
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s policy: %w", loader.Source(), err)
	}

	log.Printf("Loaded %s shipping policy %s: %d methods, %d cities, %d postal codes",
		loader.Source(), shortVersion(version), len(table.methods), table.CityCount(), table.PostalCodeCount())
	return table, nil
}

func shortVersion(v string) string {
	if len(v) > 12 {
		return v[:12]
	}
	return v
}
