package statushttp

import (
	"time"

	"go.uber.org/zap"

	"github.com/LubyRuffy/agentauthd/authcheck"
)

type Config struct {
	// BasePath 仅用于注册路由时拼接路径，默认 "/"（端点直接挂在根下）。
	BasePath string
	// Logger 可选，nil 时使用 zap.NewNop()。
	Logger *zap.Logger

	// 各 provider 的 Checker 可注入（主要用于测试），nil 时用默认实现。
	ClaudeChecker authcheck.Checker
	CursorChecker authcheck.Checker
	CodexChecker  authcheck.Checker

	// Diagnostics 可注入，nil 时使用 authcheck.CollectClaudeDiagnostics。
	Diagnostics func() authcheck.ClaudeDiagnostics

	// CursorCommand / ProbeTimeout 只在 CursorChecker 为 nil 时
	// 用于构造默认的 Cursor 探测。
	CursorCommand string
	ProbeTimeout  time.Duration
}

// StatusResponse 是 /<provider>/status 的响应体。
// email 沿用前端的历史字段名，承载 Identity 展示标签，绝不是原始 token；
// method 只在认证成功时下发，标记该结论的校验策略。
type StatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Error         string `json:"error,omitempty"`
	Method        string `json:"method,omitempty"`
}

const internalErrorMessage = "internal server error"
