package authcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// claudeCredentialsFile 是 ~/.claude/.credentials.json 的只读视图。
// 文件由 Claude CLI 自己维护，这里不关心未列出的字段。
type claudeCredentialsFile struct {
	Env           map[string]any `json:"env"`
	ClaudeAiOauth *claudeOAuth   `json:"claudeAiOauth"`
}

type claudeOAuth struct {
	AccessToken string `json:"accessToken"`
	// ExpiresAt 毫秒级 epoch；缺失视为永不过期。
	ExpiresAt *int64 `json:"expiresAt"`
	Email     string `json:"email"`
	User      string `json:"user"`
}

// settings.json 风格 env 块里被认可的两个覆盖键，
// 任一存在即视为运维手工注入的凭证（绕过 OAuth）。
const (
	claudeEnvAuthTokenKey = "ANTHROPIC_AUTH_TOKEN"
	claudeEnvAPIKeyKey    = "ANTHROPIC_API_KEY"
)

const claudeEnvConfiguredIdentity = "Configured via settings.json"

// claudeOutcome 是凭证解析的封闭结果集，让判定顺序可以独立测试。
type claudeOutcome int

const (
	claudeOutcomeNoToken claudeOutcome = iota
	claudeOutcomeEnvConfigured
	claudeOutcomeOAuthValid
	claudeOutcomeOAuthExpired
)

// evaluateClaudeCredentials 按固定顺序判定：env 覆盖 > OAuth > 无凭证。
// 第二个返回值是 OAuthValid 时的身份标签（可能为空）。
func evaluateClaudeCredentials(creds *claudeCredentialsFile, now time.Time) (claudeOutcome, string) {
	if claudeEnvOverrideSet(creds.Env, claudeEnvAuthTokenKey) || claudeEnvOverrideSet(creds.Env, claudeEnvAPIKeyKey) {
		return claudeOutcomeEnvConfigured, ""
	}

	oauth := creds.ClaudeAiOauth
	if oauth == nil || strings.TrimSpace(oauth.AccessToken) == "" {
		return claudeOutcomeNoToken, ""
	}
	if oauth.ExpiresAt != nil && time.UnixMilli(*oauth.ExpiresAt).Before(now) {
		return claudeOutcomeOAuthExpired, ""
	}

	identity := strings.TrimSpace(oauth.Email)
	if identity == "" {
		identity = strings.TrimSpace(oauth.User)
	}
	return claudeOutcomeOAuthValid, identity
}

func claudeEnvOverrideSet(env map[string]any, key string) bool {
	v, ok := env[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	// 非字符串值（数字等）也算配置了该键。
	return true
}

// ClaudeChecker 通过读取凭证文件判定 Claude CLI 的认证状态。
// 零值可用；字段只在测试或特殊部署时覆盖。
type ClaudeChecker struct {
	// Path 为空时按 ClaudeCredentialsPath() 解析。
	Path string
	// Now 为空时使用 time.Now，用于过期判定。
	Now    func() time.Time
	Logger *zap.Logger
}

func NewClaudeChecker(logger *zap.Logger) *ClaudeChecker {
	return &ClaudeChecker{Logger: logger}
}

func (c *ClaudeChecker) Check(ctx context.Context) AuthStatus {
	path := c.Path
	if path == "" {
		path = ClaudeCredentialsPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return AuthStatus{Err: fmt.Sprintf("failed to read claude credentials file: %v", err)}
	}

	var creds claudeCredentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		// 文件可能正被 CLI 重写到一半，按损坏处理而不是崩溃。
		return AuthStatus{Err: fmt.Sprintf("failed to parse claude credentials file: %v", err)}
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	outcome, identity := evaluateClaudeCredentials(&creds, now)
	c.log(outcome)
	switch outcome {
	case claudeOutcomeEnvConfigured:
		return authenticated(claudeEnvConfiguredIdentity)
	case claudeOutcomeOAuthValid:
		return authenticated(identity)
	default:
		// 过期与从未配置统一为无错误的否定结果。
		return AuthStatus{}
	}
}

func (c *ClaudeChecker) log(outcome claudeOutcome) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug("claude credentials evaluated", zap.Int("outcome", int(outcome)))
}
