package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LubyRuffy/agentauthd"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(NewViper())
	require.NoError(t, err)

	require.Equal(t, agentauthd.DefaultListenAddr, cfg.ListenAddr)
	require.Equal(t, "/", cfg.BasePath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, agentauthd.DefaultCursorCommand, cfg.CursorCommand)
	require.Equal(t, agentauthd.DefaultProbeTimeout, cfg.ProbeTimeout)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("PROBE_TIMEOUT_MS", "1500")
	t.Setenv("CURSOR_COMMAND", "/opt/cursor/cursor-agent")

	cfg, err := NewConfig(NewViper())
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
	require.Equal(t, 1500*time.Millisecond, cfg.ProbeTimeout)
	require.Equal(t, "/opt/cursor/cursor-agent", cfg.CursorCommand)
}

func TestNewConfig_InvalidProbeTimeout(t *testing.T) {
	v := NewViper()
	v.Set("PROBE_TIMEOUT_MS", 0)

	_, err := NewConfig(v)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PROBE_TIMEOUT_MS")
}

func TestNewConfig_EmptyListenAddr(t *testing.T) {
	v := NewViper()
	v.Set("LISTEN_ADDR", "  ")

	_, err := NewConfig(v)
	require.Error(t, err)
}
