package analyzer

import (
	"os"
	"path/filepath"
)

// DefaultSchemaPath locates the response schema, honoring the test override.
func DefaultSchemaPath() string {
	path := os.Getenv("GHIA_SCHEMA_PATH")
	if path != "" {
		return path
	}
	return filepath.Join("schemas", "analysis.schema.json")
}
