package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromMap(t *testing.T) {
	t.Run("Should decode weakly typed option maps", func(t *testing.T) {
		opts, err := OptionsFromMap(map[string]any{
			"host_url":  "https://flow.example.com",
			"page_size": "20",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://flow.example.com", opts.HostURL)
		assert.Equal(t, 20, opts.PageSize)
	})
	t.Run("Should decode empty map to zero options", func(t *testing.T) {
		opts, err := OptionsFromMap(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, &Options{}, opts)
	})
}

func TestOptionsWithDefaults(t *testing.T) {
	t.Run("Should fill zero fields from defaults", func(t *testing.T) {
		merged, err := (&Options{HostURL: "https://h.example"}).withDefaults()
		require.NoError(t, err)
		assert.Equal(t, "https://h.example", merged.HostURL)
		assert.Equal(t, 50, merged.PageSize)
		assert.Equal(t, 500, merged.MaxPageSize)
	})
	t.Run("Should keep explicit values", func(t *testing.T) {
		merged, err := (&Options{PageSize: 10, MaxPageSize: 20}).withDefaults()
		require.NoError(t, err)
		assert.Equal(t, 10, merged.PageSize)
		assert.Equal(t, 20, merged.MaxPageSize)
	})
	t.Run("Should return defaults for nil options", func(t *testing.T) {
		merged, err := (*Options)(nil).withDefaults()
		require.NoError(t, err)
		assert.Equal(t, DefaultOptions(), merged)
	})
}
