// Package story runs a YAML list of Archivist operations serially, printing a
// narrative as it goes. A story looks like:
//
//	operations:
//	  - operation: CREATE_ASSET
//	    to_print: Create an empty radiation bag with id 1.
//	    wait_time: 10
//	    asset_id: radiation bag 1
//	    behaviours:
//	      - RecordEvidence
//	    attributes:
//	      radioactive: "true"
//	      radiation_level: "0"
//
// asset_id and policy_id are local names used to refer to records created
// by earlier operations. They are never sent to the server.
package story

import (
	"errors"
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Operation is the kind of a story step.
type Operation string

const (
	CreateAsset            Operation = "CREATE_ASSET"
	CreateEvent            Operation = "CREATE_EVENT"
	CreateCompliancePolicy Operation = "CREATE_COMPLIANCE_POLICY"
	CheckCompliance        Operation = "CHECK_COMPLIANCE"
	DeleteCompliance       Operation = "DELETE_COMPLIANCE"
)

var operations = map[Operation]bool{
	CreateAsset:            true,
	CreateEvent:            true,
	CreateCompliancePolicy: true,
	CheckCompliance:        true,
	DeleteCompliance:       true,
}

// ParseOperation normalizes name so that "CREATE_ASSET", "create_asset" and
// "createAsset" are all accepted.
func ParseOperation(name string) (Operation, error) {
	op := Operation(strcase.ToScreamingSnake(name))
	if !operations[op] {
		return "", fmt.Errorf("unknown operation %q", name)
	}
	return op, nil
}

// Story is a parsed story file.
type Story struct {
	Operations []Step `yaml:"operations"`
}

// Step is one operation with its raw arguments. Arguments other than
// operation, to_print and wait_time are decoded by the operation itself.
type Step map[string]any

// Operation returns the normalized operation name.
func (s Step) Operation() (Operation, error) {
	name, ok := s["operation"].(string)
	if !ok || name == "" {
		return "", errors.New("operation is required")
	}
	return ParseOperation(name)
}

// Parse parses a story from YAML.
func Parse(data []byte) (*Story, error) {
	var s Story
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing story: %w", err)
	}
	if len(s.Operations) == 0 {
		return nil, errors.New("story has no operations")
	}
	for i, step := range s.Operations {
		if _, err := step.Operation(); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Load reads and parses the story file at path.
func Load(fs afero.Fs, path string) (*Story, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading story %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
