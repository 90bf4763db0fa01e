package assumption

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"reit_valuation/pkg/core/utils"
)

// DecodeForm parses a form from JSON, Hjson or loosely-written JSON. Fields
// missing from data keep their value in defaults.
func DecodeForm(data []byte, defaults Form) (Form, error) {
	form := defaults
	if _, err := utils.SmartParse(string(data), &form); err != nil {
		return Form{}, fmt.Errorf("failed to decode assumptions: %w", err)
	}
	return form, nil
}

// DecodeSet parses a full assumption set. A payload holding only form fields
// is accepted and wrapped in a new set. Missing form fields come from
// defaults in both shapes.
func DecodeSet(data []byte, defaults Form) (*Set, error) {
	set := &Set{Form: defaults}
	canonical, err := utils.SmartParse(string(data), set)
	if err != nil {
		return nil, fmt.Errorf("failed to decode assumption set: %w", err)
	}

	if !HasFormKey([]byte(canonical)) {
		form, err := DecodeForm([]byte(canonical), defaults)
		if err != nil {
			return nil, err
		}
		set.Form = form
	}
	set.ensureIdentity()
	return set, nil
}

// HasFormKey reports whether the top-level JSON object in data has a "form"
// member, which marks a full set rather than a bare form.
func HasFormKey(data []byte) bool {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return false
	}
	_, ok := top["form"]
	return ok
}

// LoadFile reads an assumption set from .json, .hjson, .yaml or .yml.
// Missing form fields come from defaults.
func LoadFile(path string, defaults Form) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data, defaults)
	default:
		return DecodeSet(data, defaults)
	}
}

func decodeYAML(data []byte, defaults Form) (*Set, error) {
	// Either a full set (with a form: block) or a bare form.
	var top map[string]interface{}
	if err := yaml.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("failed to parse yaml assumptions: %w", err)
	}

	set := &Set{Form: defaults}
	if _, ok := top["form"]; ok {
		if err := yaml.Unmarshal(data, set); err != nil {
			return nil, fmt.Errorf("failed to parse yaml assumption set: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &set.Form); err != nil {
		return nil, fmt.Errorf("failed to parse yaml form: %w", err)
	}
	set.ensureIdentity()
	return set, nil
}
