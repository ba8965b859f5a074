package core

import (
	"encoding/json"
	"fmt"

	"dario.cat/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/mohae/deepcopy"
)

// Input is the JSON document a step was started with, kept as a plain map so
// placeholder resolvers can read arbitrary fields from it.
type Input map[string]any

func NewInput(data map[string]any) *Input {
	if data == nil {
		data = make(map[string]any)
	}
	input := Input(data)
	return &input
}

func (i *Input) AsMap() map[string]any {
	if i == nil {
		return nil
	}
	copied, err := deepCopyMap(map[string]any(*i))
	if err != nil {
		return nil
	}
	return copied
}

func (i *Input) Prop(key string) any {
	if i == nil {
		return nil
	}
	return (*i)[key]
}

func (i *Input) Set(key string, value any) {
	if i == nil {
		return
	}
	(*i)[key] = value
}

// Merge returns a new input with other's values merged over i.
// Slices are appended rather than replaced.
func (i *Input) Merge(other *Input) (*Input, error) {
	if i == nil {
		return other, nil
	}
	if other == nil {
		return i, nil
	}
	merged, err := i.Clone()
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(merged, other, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return nil, fmt.Errorf("failed to merge inputs: %w", err)
	}
	return merged, nil
}

func (i *Input) Clone() (*Input, error) {
	if i == nil {
		return nil, nil
	}
	copied, err := deepCopyMap(map[string]any(*i))
	if err != nil {
		return nil, err
	}
	clone := Input(copied)
	return &clone, nil
}

// Output is the JSON document a finished step produced. It shares Input's
// representation so resolvers can treat both sides of a step uniformly.
type Output = Input

func NewOutput(data map[string]any) *Output {
	return NewInput(data)
}

func deepCopyMap(m map[string]any) (map[string]any, error) {
	copiedAny := deepcopy.Copy(m)
	copied, ok := copiedAny.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to copy map")
	}
	return copied, nil
}

// AsMapDefault converts any JSON-taggable value into a generic map.
func AsMapDefault(v any) (map[string]any, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(bytes, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value to map: %w", err)
	}
	return out, nil
}

// FromMapDefault decodes a generic map into T using weakly typed conversion.
func FromMapDefault[T any](data any) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	return out, decoder.Decode(data)
}
