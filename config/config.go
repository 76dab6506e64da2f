package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/LubyRuffy/agentauthd"
)

// Config 是服务进程的运行配置。
// 注意 CLAUDE_CREDENTIALS_PATH 不在这里：它属于凭证定位器自己的环境输入，
// 由 authcheck 包直接读取。
type Config struct {
	ListenAddr string
	BasePath   string
	LogLevel   string

	// Cursor 探测用的可执行文件与超时。
	CursorCommand string
	ProbeTimeout  time.Duration
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", agentauthd.DefaultListenAddr)
	v.SetDefault("BASE_PATH", "/")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CURSOR_COMMAND", agentauthd.DefaultCursorCommand)
	v.SetDefault("PROBE_TIMEOUT_MS", int(agentauthd.DefaultProbeTimeout/time.Millisecond))

	return v
}

func NewConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		ListenAddr: v.GetString("LISTEN_ADDR"),
		BasePath:   v.GetString("BASE_PATH"),
		LogLevel:   v.GetString("LOG_LEVEL"),

		CursorCommand: v.GetString("CURSOR_COMMAND"),
		ProbeTimeout:  time.Duration(v.GetInt("PROBE_TIMEOUT_MS")) * time.Millisecond,
	}

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return Config{}, fmt.Errorf("LISTEN_ADDR must not be empty")
	}
	if cfg.ProbeTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid PROBE_TIMEOUT_MS %d", v.GetInt("PROBE_TIMEOUT_MS"))
	}
	if strings.TrimSpace(cfg.CursorCommand) == "" {
		return Config{}, fmt.Errorf("CURSOR_COMMAND must not be empty")
	}

	return cfg, nil
}
