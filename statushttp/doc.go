// Package statushttp 提供认证状态检查的 HTTP 层（基于 gin）。
//
// 该包对外只暴露：
// - 每个 provider 一个只读状态端点：/claude/status、/cursor/status、/codex/status
// - Claude 专用的非敏感诊断端点：/debug-auth
// - Gin 路由注册方法与请求 ID 中间件
//
// 所有 Checker 都通过 Config 注入（为空时使用默认实现），该包自身不解析凭证。
// 完成的检查（包括否定结果）一律返回 200；只有 checker 内部的意外 panic
// 才由兜底层转成 500 的通用错误响应。
package statushttp
