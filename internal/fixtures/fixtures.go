// Package fixtures loads dog catalog seed files. A file is a JSON array or,
// for .yaml/.yml paths, a YAML list of dog records.
package fixtures

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tbourn/pugorugh-backend/internal/services"
)

// ErrEmpty is returned when a fixture file holds no dogs.
var ErrEmpty = errors.New("fixtures: no dogs in file")

// Dog is one record of a fixture file.
type Dog struct {
	Name          string `json:"name"           yaml:"name"`
	ImageFilename string `json:"image_filename" yaml:"image_filename"`
	Breed         string `json:"breed"          yaml:"breed"`
	Age           int    `json:"age"            yaml:"age"`
	Gender        string `json:"gender"         yaml:"gender"`
	Size          string `json:"size"           yaml:"size"`
}

// NewDog converts the record to the catalog input type.
func (d Dog) NewDog() services.NewDog {
	return services.NewDog{
		Name:          d.Name,
		ImageFilename: d.ImageFilename,
		Breed:         d.Breed,
		Age:           d.Age,
		Gender:        strings.ToLower(strings.TrimSpace(d.Gender)),
		Size:          strings.ToLower(strings.TrimSpace(d.Size)),
	}
}

// LoadDogs reads and validates the fixture file at path. Records are
// returned in file order; the first invalid record fails the whole load.
func LoadDogs(path string) ([]services.NewDog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDogs(data, isYAML(path))
}

// ParseDogs decodes data as YAML when asYAML is set, JSON otherwise.
func ParseDogs(data []byte, asYAML bool) ([]services.NewDog, error) {
	var recs []Dog
	if asYAML {
		if err := yaml.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("fixtures: parse yaml: %w", err)
		}
	} else if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("fixtures: parse json: %w", err)
	}
	if len(recs) == 0 {
		return nil, ErrEmpty
	}

	out := make([]services.NewDog, 0, len(recs))
	for i, r := range recs {
		nd := r.NewDog()
		if err := nd.Validate(); err != nil {
			return nil, fmt.Errorf("fixtures: dog #%d (%q): %w", i+1, r.Name, err)
		}
		out = append(out, nd)
	}
	return out, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
