// Package infoload builds the HumanizerInfo a run starts from.
package infoload

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"txHumanizer/internal/model"
)

// NameSource supplies an address book, such as the address_names table.
type NameSource interface {
	LoadNames(ctx context.Context) (map[string]string, error)
}

// LoadFile reads a humanizer info JSON file. An empty path yields empty
// info.
func LoadFile(path string) (*model.HumanizerInfo, error) {
	if path == "" {
		return model.HumanizerInfo{}.Normalize(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read info: %w", err)
	}
	return Parse(data)
}

// Parse decodes, normalizes and validates humanizer info.
func Parse(data []byte) (*model.HumanizerInfo, error) {
	var raw model.HumanizerInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse info: %w", err)
	}
	info := raw.Normalize()
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("validate info: %w", err)
	}
	return info, nil
}

// MergeNames overlays names from src. Names from the info file win.
func MergeNames(ctx context.Context, info *model.HumanizerInfo, src NameSource) (*model.HumanizerInfo, error) {
	if src == nil {
		return info, nil
	}
	names, err := src.LoadNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load names: %w", err)
	}
	return info.WithNames(names), nil
}
