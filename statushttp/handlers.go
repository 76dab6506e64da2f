package statushttp

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LubyRuffy/agentauthd"
	"github.com/LubyRuffy/agentauthd/authcheck"
	"github.com/LubyRuffy/agentauthd/metrics"
)

type statusHandlers struct {
	logger      *zap.Logger
	claude      authcheck.Checker
	cursor      authcheck.Checker
	codex       authcheck.Checker
	diagnostics func() authcheck.ClaudeDiagnostics
}

func newStatusHandlers(cfg Config) (*statusHandlers, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &statusHandlers{
		logger:      logger,
		claude:      cfg.ClaudeChecker,
		cursor:      cfg.CursorChecker,
		codex:       cfg.CodexChecker,
		diagnostics: cfg.Diagnostics,
	}
	if h.claude == nil {
		h.claude = authcheck.NewClaudeChecker(logger)
	}
	if h.cursor == nil {
		h.cursor = &authcheck.CursorChecker{
			Command: cfg.CursorCommand,
			Timeout: cfg.ProbeTimeout,
			Logger:  logger,
		}
	}
	if h.codex == nil {
		h.codex = authcheck.NewCodexChecker(logger)
	}
	if h.diagnostics == nil {
		h.diagnostics = authcheck.CollectClaudeDiagnostics
	}
	return h, nil
}

func (h *statusHandlers) claudeStatus(c *gin.Context) {
	h.providerStatus(c, agentauthd.ProviderClaude, h.claude, authcheck.MethodCredentialsFile)
}

func (h *statusHandlers) cursorStatus(c *gin.Context) {
	h.providerStatus(c, agentauthd.ProviderCursor, h.cursor, authcheck.MethodCLI)
}

func (h *statusHandlers) codexStatus(c *gin.Context) {
	h.providerStatus(c, agentauthd.ProviderCodex, h.codex, authcheck.MethodCredentialsFile)
}

// providerStatus 执行检查并翻译为响应。Checker 本身承诺不 panic，
// 这里仍兜一层：意外失败统一转成 500 的通用错误，绝不让请求崩掉。
func (h *statusHandlers) providerStatus(c *gin.Context, provider string, checker authcheck.Checker, method string) {
	start := time.Now()

	status, ok := h.safeCheck(c.Request.Context(), provider, checker)
	if !ok {
		metrics.ObserveCheck(provider, metrics.OutcomeError, time.Since(start))
		c.JSON(http.StatusInternalServerError, StatusResponse{Error: internalErrorMessage})
		return
	}

	outcome := metrics.OutcomeUnauthenticated
	if status.Authenticated {
		outcome = metrics.OutcomeAuthenticated
	}
	metrics.ObserveCheck(provider, outcome, time.Since(start))

	resp := StatusResponse{
		Authenticated: status.Authenticated,
		Error:         status.Err,
	}
	if status.Authenticated {
		resp.Email = status.Identity
		resp.Method = method
	}
	c.JSON(http.StatusOK, resp)
}

func (h *statusHandlers) safeCheck(ctx context.Context, provider string, checker authcheck.Checker) (status authcheck.AuthStatus, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("auth checker panicked",
				zap.String("provider", provider), zap.Any("panic", r))
			ok = false
		}
	}()
	return checker.Check(ctx), true
}

func (h *statusHandlers) debugAuth(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagnostics())
}
