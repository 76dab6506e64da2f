package authcheck

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LubyRuffy/agentauthd"
)

// Cursor CLI 没有凭证文件可读，唯一可观测接口是
// `cursor-agent status` 的人类可读输出与退出码。
var cursorLoggedInPattern = regexp.MustCompile(`Logged in as\s+([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)

const (
	cursorNotInstalledErr = "Cursor CLI not found or not installed"
	cursorNotLoggedInErr  = "Not logged in"
	cursorTimeoutErr      = "Command timeout"
)

// CursorChecker 通过拉起 Cursor CLI 并解析其输出判定认证状态。零值可用。
type CursorChecker struct {
	// Command 为空时使用 agentauthd.DefaultCursorCommand。
	Command string
	// Timeout 为零时使用 agentauthd.DefaultProbeTimeout。
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewCursorChecker(logger *zap.Logger) *CursorChecker {
	return &CursorChecker{Logger: logger}
}

func (c *CursorChecker) Check(ctx context.Context) AuthStatus {
	command := c.Command
	if command == "" {
		command = agentauthd.DefaultCursorCommand
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = agentauthd.DefaultProbeTimeout
	}

	res := newProcessProber(command, []string{"status"}, timeout, c.Logger).run()

	switch {
	case res.timedOut:
		return AuthStatus{Err: cursorTimeoutErr}
	case res.spawnErr != nil:
		return AuthStatus{Err: cursorNotInstalledErr}
	case res.exitCode == 0:
		if m := cursorLoggedInPattern.FindStringSubmatch(res.stdout); m != nil {
			status := authenticated(m[1])
			status.RawOutput = res.stdout
			return status
		}
		if strings.Contains(res.stdout, "Logged in") {
			// 登录了但邮箱解析不出来，退化为固定标签。
			status := authenticated("Logged in")
			status.RawOutput = res.stdout
			return status
		}
		return AuthStatus{Err: cursorNotLoggedInErr, RawOutput: res.stdout}
	default:
		errMsg := strings.TrimSpace(res.stderr)
		if errMsg == "" {
			errMsg = cursorNotLoggedInErr
		}
		return AuthStatus{Err: errMsg, RawOutput: res.stdout}
	}
}
