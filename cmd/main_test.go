package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_PortFlagBindsToViper(t *testing.T) {
	v := viper.New()
	rootCmd, err := newRootCmd(v)
	require.NoError(t, err)

	require.NoError(t, rootCmd.Flags().Parse([]string{"--port", "6001", "--env-file", "custom.env"}))
	assert.Equal(t, "6001", v.GetString("PORT"))
	assert.Equal(t, "custom.env", envFile)
}

func TestNewRootCmd_UnsetPortFlagDoesNotOverride(t *testing.T) {
	v := viper.New()
	v.SetDefault("PORT", "5000")
	_, err := newRootCmd(v)
	require.NoError(t, err)

	assert.Equal(t, "5000", v.GetString("PORT"))
}
