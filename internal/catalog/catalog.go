package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed substations.yaml
var defaultCatalog []byte

// Substation is one entry of the static catalog. The catalog is defined
// at build/config time and never mutated at runtime.
type Substation struct {
	ID   string  `yaml:"id" json:"id"`
	Name string  `yaml:"name" json:"name"`
	Lat  float64 `yaml:"lat" json:"lat"`
	Lng  float64 `yaml:"lng" json:"lng"`
}

type catalogFile struct {
	Substations []Substation `yaml:"substations"`
}

// Load returns the substation catalog. When path is empty the embedded
// default catalog is used.
func Load(path string) ([]Substation, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
		}
		data = b
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(cf.Substations) == 0 {
		return nil, fmt.Errorf("catalog contains no substations")
	}
	return cf.Substations, nil
}
