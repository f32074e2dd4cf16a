package nominal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"garage/internal/domain"
)

// RuleFile is the YAML document operators maintain for nominal codes.
//
//	codes:
//	  - id: sales-labour
//	    code: "4000"
//	    name: Labour sales
//	rules:
//	  - name: Workshop labour
//	    priority: 10
//	    entity_id: all
//	    item_type: Labor
//	    nominal_code_id: sales-labour
type RuleFile struct {
	Codes []domain.NominalCode     `yaml:"codes"`
	Rules []domain.NominalCodeRule `yaml:"rules"`
}

// LoadRules reads and validates a rule file from disk.
func LoadRules(path string) (*RuleFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()
	return DecodeRules(f)
}

// DecodeRules parses a rule document, fills defaults and validates it.
// Rules without an id get a generated one; a missing entity defaults to all.
func DecodeRules(r io.Reader) (*RuleFile, error) {
	var file RuleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode rule file: %w", err)
	}

	codes := make(map[string]struct{}, len(file.Codes))
	for i, c := range file.Codes {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("codes[%d]: id is required: %w", i, domain.ErrInvalidArgument)
		}
		codes[c.ID] = struct{}{}
	}

	for i := range file.Rules {
		rule := &file.Rules[i]
		if rule.ID == "" {
			rule.ID = uuid.NewString()
		}
		if strings.TrimSpace(rule.EntityID) == "" {
			rule.EntityID = domain.AllEntities
		}
		if !rule.ItemType.Valid() {
			return nil, fmt.Errorf("rules[%d] %q: unknown item type %q: %w", i, rule.Name, rule.ItemType, domain.ErrInvalidArgument)
		}
		if rule.NominalCodeID == "" {
			return nil, fmt.Errorf("rules[%d] %q: nominal_code_id is required: %w", i, rule.Name, domain.ErrInvalidArgument)
		}
		if len(codes) > 0 {
			if _, ok := codes[rule.NominalCodeID]; !ok {
				return nil, fmt.Errorf("rules[%d] %q: unknown nominal code %q: %w", i, rule.Name, rule.NominalCodeID, domain.ErrInvalidArgument)
			}
		}
	}
	return &file, nil
}
