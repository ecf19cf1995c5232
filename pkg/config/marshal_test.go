package config

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEffectiveConfig(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Models.EnvVar = "MY_3D"

	data, err := Marshal(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "[models]")
	assert.Regexp(t, `env_var = ['"]MY_3D['"]`, out)
	assert.Equal(t, 15, strings.Count(out, "[[libraries]]"))

	// The rendered document loads back into the same shape
	var back Config
	require.NoError(t, toml.Unmarshal(data, &back))
	assert.Equal(t, cfg.Layout, back.Layout)
	assert.Equal(t, cfg.Libraries, back.Libraries)
}

func TestDefaultsContent(t *testing.T) {
	content := DefaultsContent()
	assert.Contains(t, content, "[layout]")
	assert.Contains(t, content, `key = "mechanical"`)
}
