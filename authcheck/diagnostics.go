package authcheck

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ClaudeDiagnostics 汇总 Claude 凭证解析过程的非敏感信息，辅助支持排障。
// 只输出布尔值与顶层键名，绝不包含 token 等字段值。
// 每个阶段的失败都单独记录，后续阶段留空，不中断整份报告。
type ClaudeDiagnostics struct {
	CredentialsPathOverrideSet bool     `json:"credentialsPathOverrideSet"`
	AnthropicAPIKeySet         bool     `json:"anthropicApiKeySet"`
	ResolvedPath               string   `json:"resolvedPath,omitempty"`
	FileAccessible             bool     `json:"fileAccessible"`
	TopLevelKeys               []string `json:"topLevelKeys,omitempty"`
	HasClaudeAiOauth           bool     `json:"hasClaudeAiOauth"`
	HasLegacyAccessToken       bool     `json:"hasLegacyAccessToken"`

	ResolveError string `json:"resolveError,omitempty"`
	FileError    string `json:"fileError,omitempty"`
	ParseError   string `json:"parseError,omitempty"`
	// Err 是兜底：任何没被上面阶段捕获的意外失败。
	Err string `json:"error,omitempty"`
}

// CollectClaudeDiagnostics 生成一份诊断报告。永不 panic。
func CollectClaudeDiagnostics() (d ClaudeDiagnostics) {
	defer func() {
		if r := recover(); r != nil {
			d.Err = fmt.Sprintf("diagnostics failed: %v", r)
		}
	}()

	d.CredentialsPathOverrideSet = strings.TrimSpace(os.Getenv(EnvClaudeCredentialsPath)) != ""
	d.AnthropicAPIKeySet = strings.TrimSpace(os.Getenv(EnvAnthropicAPIKey)) != ""

	d.ResolvedPath = ClaudeCredentialsPath()
	if d.ResolvedPath == "" {
		d.ResolveError = "credentials path resolved to empty"
		return d
	}

	data, err := os.ReadFile(d.ResolvedPath)
	if err != nil {
		d.FileError = err.Error()
		return d
	}
	d.FileAccessible = true

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		d.ParseError = err.Error()
		return d
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d.TopLevelKeys = keys

	_, d.HasClaudeAiOauth = raw["claudeAiOauth"]
	_, d.HasLegacyAccessToken = raw["accessToken"]
	return d
}
