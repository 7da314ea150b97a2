package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	data := []byte("max_workers: 2\nbogus_option: true\n")
	_, err := Load(data, Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus_option")
}

func TestLoadMergesOverDefaults(t *testing.T) {
	// An unset CLI base (zero-valued fields) takes the file's values;
	// CLI-provided values (non-zero) always win over the file, per the
	// precedence contract in mergeOverFile.
	base := &Config{TargetPath: "."}
	data := []byte("max_workers: 8\nformat: json\n")
	merged, err := Load(data, base)
	require.NoError(t, err)
	assert.Equal(t, 8, merged.MaxWorkers)
	assert.Equal(t, FormatJSON, merged.Format)
}

func TestLoadDoesNotOverrideExplicitCLIValue(t *testing.T) {
	base := &Config{TargetPath: ".", MaxWorkers: 2, Format: FormatXML}
	data := []byte("max_workers: 8\nformat: json\n")
	merged, err := Load(data, base)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.MaxWorkers)
	assert.Equal(t, FormatXML, merged.Format)
}

func TestValidateRejectsBadWorkerCount(t *testing.T) {
	c := Default()
	c.MaxWorkers = 0
	assert.Error(t, Validate(c))
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	c := Default()
	c.Format = "yaml"
	assert.Error(t, Validate(c))
}
