package authcheck

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCodexAuth(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// makeIDToken 构造未签名的三段式 JWT，payload 为给定 claims。
func makeIDToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func TestCodexChecker_MissingFile(t *testing.T) {
	c := &CodexChecker{Path: filepath.Join(t.TempDir(), "auth.json")}

	status := c.Check(context.Background())
	require.False(t, status.Authenticated)
	require.Equal(t, "Codex not configured", status.Err)
}

func TestCodexChecker_IDTokenEmail(t *testing.T) {
	token := makeIDToken(t, map[string]any{"email": "a@b.com"})
	p := writeCodexAuth(t, fmt.Sprintf(`{"tokens": {"id_token": %q}}`, token))

	status := (&CodexChecker{Path: p}).Check(context.Background())
	require.True(t, status.Authenticated)
	require.Equal(t, "a@b.com", status.Identity)
	require.Empty(t, status.Err)
}

func TestCodexChecker_IDTokenUserFallback(t *testing.T) {
	token := makeIDToken(t, map[string]any{"user": "dev-user"})
	p := writeCodexAuth(t, fmt.Sprintf(`{"tokens": {"id_token": %q}}`, token))

	status := (&CodexChecker{Path: p}).Check(context.Background())
	require.True(t, status.Authenticated)
	require.Equal(t, "dev-user", status.Identity)
}

func TestCodexChecker_CorruptedIDTokenSwallowed(t *testing.T) {
	// payload 段不是合法 base64url：解码失败必须被吞掉，回退为占位身份。
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	p := writeCodexAuth(t, fmt.Sprintf(`{"tokens": {"id_token": %q}}`, header+".!!!!.sig"))

	status := (&CodexChecker{Path: p}).Check(context.Background())
	require.True(t, status.Authenticated)
	require.Equal(t, GenericIdentity, status.Identity)
	require.Empty(t, status.Err)
}

func TestCodexChecker_WrongSegmentCountSwallowed(t *testing.T) {
	p := writeCodexAuth(t, `{"tokens": {"id_token": "only-one-segment"}}`)

	status := (&CodexChecker{Path: p}).Check(context.Background())
	require.True(t, status.Authenticated)
	require.Equal(t, GenericIdentity, status.Identity)
}

func TestCodexChecker_AccessTokenOnly(t *testing.T) {
	p := writeCodexAuth(t, `{"tokens": {"access_token": "k_access"}}`)

	status := (&CodexChecker{Path: p}).Check(context.Background())
	require.True(t, status.Authenticated)
	require.Equal(t, GenericIdentity, status.Identity)
}

func TestCodexChecker_APIKeyFallback(t *testing.T) {
	p := writeCodexAuth(t, `{"OPENAI_API_KEY": "sk-xxx"}`)

	status := (&CodexChecker{Path: p}).Check(context.Background())
	require.True(t, status.Authenticated)
	require.Equal(t, "API Key Auth", status.Identity)
}

func TestCodexChecker_NoTokens(t *testing.T) {
	p := writeCodexAuth(t, `{"tokens": {}}`)

	status := (&CodexChecker{Path: p}).Check(context.Background())
	require.False(t, status.Authenticated)
	require.Equal(t, "No valid tokens found", status.Err)
}

func TestCodexChecker_MalformedJSON(t *testing.T) {
	p := writeCodexAuth(t, `{"tokens": {`)

	status := (&CodexChecker{Path: p}).Check(context.Background())
	require.False(t, status.Authenticated)
	require.Contains(t, status.Err, "failed to parse codex auth file")
}

func TestCodexChecker_DefaultPath(t *testing.T) {
	// 隔离真实 HOME，避免读取到开发机上的 ~/.codex/auth.json 导致泄漏与不稳定。
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".codex"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".codex", "auth.json"),
		[]byte(`{"tokens": {"access_token": "k_access"}}`), 0o600))

	status := NewCodexChecker(nil).Check(context.Background())
	require.True(t, status.Authenticated)
}

func TestIdentityFromIDToken_EmptyInput(t *testing.T) {
	require.Empty(t, identityFromIDToken(""))
}
