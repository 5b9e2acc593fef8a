package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadUnit loads one source file.
func ReadUnit(path string) (Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Unit{}, fmt.Errorf("failed to read unit: %w", err)
	}
	base := filepath.Base(path)
	return Unit{
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Path:   path,
		Source: string(data),
	}, nil
}

// ReadUnits loads every file in dir whose name ends in ext. Subdirectories
// are not descended into. Units are returned in file name order.
func ReadUnits(dir, ext string) ([]Unit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var units []Unit
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		u, err := ReadUnit(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}
