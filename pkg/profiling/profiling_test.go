package profiling

import (
	"testing"

	"github.com/codeelevater/alumni-connect/config"
	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileTypes_Default(t *testing.T) {
	got, err := parseProfileTypes("  ")
	require.NoError(t, err)
	assert.Equal(t, defaultProfileTypes, got)
}

func TestParseProfileTypes_DeduplicatesAndKeepsOrder(t *testing.T) {
	got, err := parseProfileTypes("mutex, cpu,,MUTEX")
	require.NoError(t, err)

	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
		pyroscope.ProfileCPU,
	}, got)
}

func TestParseProfileTypes_Invalid(t *testing.T) {
	_, err := parseProfileTypes("cpu,block")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported profile type "block"`)
}

func TestStart_Disabled(t *testing.T) {
	stop, err := Start(config.ProfilingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NotNil(t, stop)
	stop()
}

func TestStart_EnabledWithoutEndpoint(t *testing.T) {
	_, err := Start(config.ProfilingConfig{Enabled: true, Endpoint: " "}, "test")
	require.Error(t, err)
}
