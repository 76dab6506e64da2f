package authcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// codexAuthFile 是 ~/.codex/auth.json 的只读视图。
// tokens 块缺失等价于空；OPENAI_API_KEY 是无 token 场景下的直连兜底。
type codexAuthFile struct {
	OpenAIAPIKey string `json:"OPENAI_API_KEY"`
	Tokens       struct {
		IDToken     string `json:"id_token"`
		AccessToken string `json:"access_token"`
	} `json:"tokens"`
}

const codexAPIKeyIdentity = "API Key Auth"

// CodexChecker 通过读取 auth.json 判定 Codex CLI 的认证状态。零值可用。
type CodexChecker struct {
	// Path 为空时使用 CodexAuthPath()。
	Path   string
	Logger *zap.Logger
}

func NewCodexChecker(logger *zap.Logger) *CodexChecker {
	return &CodexChecker{Logger: logger}
}

func (c *CodexChecker) Check(ctx context.Context) AuthStatus {
	path := c.Path
	if path == "" {
		path = CodexAuthPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// 文件不存在是"未安装/未登录"的正常形态，给固定文案；
		// 其余读取错误（权限等）原样透出。
		if errors.Is(err, fs.ErrNotExist) {
			return AuthStatus{Err: "Codex not configured"}
		}
		return AuthStatus{Err: err.Error()}
	}

	var auth codexAuthFile
	if err := json.Unmarshal(data, &auth); err != nil {
		return AuthStatus{Err: fmt.Sprintf("failed to parse codex auth file: %v", err)}
	}

	idToken := strings.TrimSpace(auth.Tokens.IDToken)
	accessToken := strings.TrimSpace(auth.Tokens.AccessToken)
	if idToken != "" || accessToken != "" {
		return authenticated(identityFromIDToken(idToken))
	}

	if strings.TrimSpace(auth.OpenAIAPIKey) != "" {
		return authenticated(codexAPIKeyIdentity)
	}

	return AuthStatus{Err: "No valid tokens found"}
}

// identityFromIDToken 在不校验签名的前提下取 ID token payload 里的
// email/user 作为展示身份。任何解码失败都吞掉返回空串，由上层回退为
// 通用占位符——这是刻意的宽松行为，绝不向调用方抛错。
func identityFromIDToken(idToken string) string {
	if idToken == "" {
		return ""
	}
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if user, ok := claims["user"].(string); ok && user != "" {
		return user
	}
	return ""
}
