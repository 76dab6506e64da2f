package authcheck

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvClaudeCredentialsPath 可覆盖 Claude 凭证文件路径，支持 ~/ 前缀。
	EnvClaudeCredentialsPath = "CLAUDE_CREDENTIALS_PATH"
	// EnvAnthropicAPIKey 仅在诊断里以"是否设置"的布尔形式出现。
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// ClaudeCredentialsPath 解析 Claude CLI 凭证文件路径。
// 优先使用 CLAUDE_CREDENTIALS_PATH，否则默认 ~/.claude/.credentials.json。
// 纯路径计算，没有失败分支：home 解析不出来时直接退化为相对路径。
func ClaudeCredentialsPath() string {
	if override := strings.TrimSpace(os.Getenv(EnvClaudeCredentialsPath)); override != "" {
		return expandHome(override)
	}
	return filepath.Join(homeDir(), ".claude", ".credentials.json")
}

// CodexAuthPath 返回 Codex CLI 凭证文件的固定路径 ~/.codex/auth.json（不支持覆盖）。
func CodexAuthPath() string {
	return filepath.Join(homeDir(), ".codex", "auth.json")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// expandHome 把 ~ 或 ~/xxx 展开为平台 home 目录，其余路径原样返回。
func expandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), strings.TrimPrefix(p, "~/"))
	}
	return p
}
