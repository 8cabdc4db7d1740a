package domain

import (
	jsoniter "github.com/json-iterator/go"
)

// Payload is anything that can hand over a JSON compatible mapping for a request body
type Payload interface {
	JSONMap() (map[string]any, error)
}

// Map is the plain mapping payload
type Map map[string]any

func (m Map) JSONMap() (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	return m, nil
}

// JSON adapts any json-serialisable value (structs with json tags, typed enums
// marshalled as strings, ...) into a Payload by round-tripping it through JSON.
func JSON(v any) Payload {
	return jsonPayload{value: v}
}

type jsonPayload struct {
	value any
}

func (p jsonPayload) JSONMap() (map[string]any, error) {
	if p.value == nil {
		return nil, nil
	}
	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(p.value)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
