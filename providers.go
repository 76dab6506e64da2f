package agentauthd

import "time"

const (
	// ProviderClaude 等是对外暴露的 provider 标识，同时用作 metrics label。
	ProviderClaude = "claude"
	ProviderCursor = "cursor"
	ProviderCodex  = "codex"

	// DefaultCursorCommand 是 Cursor CLI 的默认可执行文件名（通过 PATH 查找）。
	DefaultCursorCommand = "cursor-agent"
	// DefaultProbeTimeout 是外部进程探测的墙钟超时，超时后强杀子进程。
	DefaultProbeTimeout = 5 * time.Second

	// DefaultListenAddr 仅监听本机回环，状态接口不做鉴权。
	DefaultListenAddr = "127.0.0.1:8080"
)

var providerOrder = []string{ProviderClaude, ProviderCursor, ProviderCodex}

// Providers 返回全部受支持的 provider 标识（顺序固定，用于展示）。
func Providers() []string {
	out := make([]string, len(providerOrder))
	copy(out, providerOrder)
	return out
}

// IsSupportedProvider 判断 name 是否为受支持的 provider 标识。
func IsSupportedProvider(name string) bool {
	for _, p := range providerOrder {
		if p == name {
			return true
		}
	}
	return false
}
