package notify

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/stepwire/stepwire/engine/core"
)

// Options tunes notification building. Zero fields fall back to defaults.
type Options struct {
	// HostURL is embedded into generated task links. Empty means links are
	// rendered as plain display text.
	HostURL string `json:"host_url" mapstructure:"host_url"`
	// PageSize is the default recipient page size for previews.
	PageSize int `json:"page_size" mapstructure:"page_size"`
	// MaxPageSize caps caller-provided page sizes.
	MaxPageSize int `json:"max_page_size" mapstructure:"max_page_size"`
}

func DefaultOptions() *Options {
	return &Options{
		PageSize:    50,
		MaxPageSize: 500,
	}
}

// withDefaults fills zero fields from the defaults.
func (o *Options) withDefaults() (*Options, error) {
	merged := DefaultOptions()
	if o == nil {
		return merged, nil
	}
	out := *o
	if err := mergo.Merge(&out, merged); err != nil {
		return nil, fmt.Errorf("failed to merge options: %w", err)
	}
	return &out, nil
}

// OptionsFromMap decodes host-supplied option maps, tolerating weakly typed
// values the way task-definition payloads arrive.
func OptionsFromMap(data map[string]any) (*Options, error) {
	opts, err := core.FromMapDefault[Options](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return &opts, nil
}
