package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndAddDefaults(t *testing.T) {
	cnf := Configuration{}

	err := cnf.validateAndAddDefaults()
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_SEPARATOR, cnf.KeyPath.Separator)
	assert.Equal(t, DEFAULT_MAX_SEGMENTS, cnf.KeyPath.MaxSegments)
	assert.Equal(t, DEFAULT_LOG_LEVEL, cnf.LogLevel)

	cnf = Configuration{
		LogLevel: " DEBUG ",
		KeyPath: KeyPathConfig{
			Separator:   "/",
			MaxSegments: 8,
		},
	}
	err = cnf.validateAndAddDefaults()
	require.NoError(t, err)
	assert.Equal(t, "debug", cnf.LogLevel)
	assert.Equal(t, "/", cnf.KeyPath.Separator)
	assert.Equal(t, 8, cnf.KeyPath.MaxSegments)
}

func TestValidateAndAddDefaults_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cnf  Configuration
	}{
		{
			name: "unknown log level",
			cnf:  Configuration{LogLevel: "loud"},
		},
		{
			name: "negative max segments",
			cnf:  Configuration{KeyPath: KeyPathConfig{MaxSegments: -1}},
		},
		{
			name: "whitespace separator",
			cnf:  Configuration{KeyPath: KeyPathConfig{Separator: " . "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cnf.validateAndAddDefaults()
			assert.Error(t, err)
		})
	}
}

func TestInitConfigFromEnv(t *testing.T) {
	t.Setenv("KVC_KEYPATH_SEPARATOR", ":")
	t.Setenv("KVC_KEYPATH_MAX_SEGMENTS", "5")
	t.Setenv("KVC_LOG_LEVEL", "warn")

	err := InitConfig()
	require.NoError(t, err)

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, ":", cnf.KeyPath.Separator)
	assert.Equal(t, 5, cnf.KeyPath.MaxSegments)
	assert.Equal(t, logrus.WarnLevel, cnf.Logger().GetLevel())
}

func TestMockConfig(t *testing.T) {
	mock := &Configuration{LogLevel: "nonsense"}
	MockConfig(mock)

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Same(t, mock, cnf)
	assert.Equal(t, logrus.InfoLevel, cnf.Logger().GetLevel())
}
