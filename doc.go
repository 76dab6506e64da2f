// Package agentauthd 提供对本机 AI CLI 工具（Claude/Cursor/Codex）认证状态的
// 只读检测能力，并以 HTTP 接口对外暴露结果，方便桌面/网页端统一展示登录状态。
//
// 该仓库主要包含两类能力：
//  1. 核心检测：authcheck 包为每个 provider 实现 Checker
//     （凭证文件定位与解析 + 外部进程探测两种策略）
//  2. HTTP 层：statushttp 包导出 /claude/status、/cursor/status、
//     /codex/status 与 /debug-auth 的 gin 路由
//
// 本子系统只读取外部 CLI 自己维护的凭证，不做凭证管理、刷新或 OAuth 流程，
// 每次请求都重新从磁盘/进程推导状态；响应与日志中永远不出现原始 token。
package agentauthd
