// Package catalog loads the master product list the matcher runs against.
// A catalog is loaded once per pipeline and treated as read-only afterwards;
// any shape problem in the source is a fatal load error, there is no partial
// or degraded mode.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"orderreg/internal"
)

// LoadFile reads a JSON array of catalog items. Item order in the file is
// preserved because the matcher breaks ties by catalog order.
func LoadFile(path string) ([]internal.CatalogItem, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	items, err := Parse(blob)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes and validates catalog JSON.
func Parse(blob []byte) ([]internal.CatalogItem, error) {
	var items []internal.CatalogItem
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("malformed catalog: %w", err)
	}
	for i := range items {
		if err := validate(items[i]); err != nil {
			return nil, fmt.Errorf("catalog item %d: %w", i, err)
		}
		if items[i].Synonyms == nil {
			items[i].Synonyms = []string{}
		}
	}
	return items, nil
}

func validate(item internal.CatalogItem) error {
	if strings.TrimSpace(item.SKUID) == "" {
		return fmt.Errorf("missing sku_id")
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("missing name (sku_id=%s)", item.SKUID)
	}
	return nil
}
