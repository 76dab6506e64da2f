package authcheck

import "context"

// AuthStatus 是一次认证状态检查的最终结果。
//
// 约束：Authenticated 为 true 时 Identity 必定非空（无法推导时回退为
// "Authenticated" 占位符），且 Err 为空；为 false 时 Identity 恒为空。
// Identity 只是展示用标签（邮箱等），永远不携带原始 token。
// RawOutput 仅在基于外部进程探测的 provider（Cursor）上设置，只作诊断用途。
type AuthStatus struct {
	Authenticated bool
	Identity      string
	Err           string
	RawOutput     string
}

// Checker 为单个 provider 实现认证状态检查。
// Check 是全函数：任何失败（文件缺失、JSON 损坏、进程超时等）都折叠为
// Authenticated=false 加可读的 Err，不 panic、不返回 error。
type Checker interface {
	Check(ctx context.Context) AuthStatus
}

// 校验策略标签，HTTP 层在认证成功时随响应下发（method 字段），
// 让调用方区分结果是怎么得出的。
const (
	MethodCredentialsFile = "credentials_file"
	MethodCLI             = "cli"
)

// GenericIdentity 是推导不出具体身份时的占位标签。
const GenericIdentity = "Authenticated"

// authenticated 构造成功结果并补齐 Identity 占位符。
func authenticated(identity string) AuthStatus {
	if identity == "" {
		identity = GenericIdentity
	}
	return AuthStatus{Authenticated: true, Identity: identity}
}
