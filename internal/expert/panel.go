package expert

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/expertpanel/internal/errors"
)

// panelFile is the on-disk YAML layout of a panel definition.
type panelFile struct {
	Experts []Descriptor `yaml:"experts"`
}

// LoadPanel reads a panel definition from a YAML file and validates every
// descriptor. The file must define at least one expert:
//
//	experts:
//	  - name: Physics Expert
//	    instructions: You are a physicist...
//	  - name: Chemistry Expert
//	    instructions: You are a chemist...
//
// Parameters:
//   - path: The path to the YAML panel file.
//
// Returns:
//   - []Descriptor: The validated panel, in file order.
//   - error: A ConfigError or ValidationError describing the problem.
func LoadPanel(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("read panel file %q: %v", path, err)
	}

	var pf panelFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, apperrors.NewConfigError("parse panel file %q: %v", path, err)
	}

	if len(pf.Experts) == 0 {
		return nil, apperrors.ValidationError{Field: "experts", Message: "panel must define at least one expert"}
	}

	for i, d := range pf.Experts {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("expert %d: %w", i, err)
		}
	}

	return pf.Experts, nil
}
