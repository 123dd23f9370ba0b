package model

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ClassField is the discriminator attribute written next to entity attributes.
const ClassField = "__class__"

// Encode returns the attribute document of e including the discriminator.
func Encode(e Entity) (json.RawMessage, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil entity", ErrInvalidEntity)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", KeyOf(e), err)
	}
	data, err = sjson.SetBytes(data, ClassField, e.Kind().String())
	if err != nil {
		return nil, fmt.Errorf("failed to tag %s: %w", KeyOf(e), err)
	}
	return data, nil
}

// Decode reconstructs an entity from its attribute document.
func Decode(data []byte) (Entity, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed attribute document", ErrInvalidEntity)
	}
	class := gjson.GetBytes(data, ClassField)
	if !class.Exists() || class.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidEntity, ClassField)
	}
	e, err := Construct(Kind(class.String()))
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEntity, class.String(), err)
	}
	if err = e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Attributes returns the plain attribute mapping of e.
func Attributes(e Entity) (map[string]interface{}, error) {
	data, err := Encode(e)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}
