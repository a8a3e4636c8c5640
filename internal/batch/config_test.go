package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.Workers)
	assert.False(t, cfg.Recursive)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Run("zero workers", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Workers = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid pipeline config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Pipeline.Raster.DPI = 0
		assert.Error(t, cfg.Validate())
	})
}
