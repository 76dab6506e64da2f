// Package metrics 定义 agentauthd 的 Prometheus 指标：
// 按 provider 与结果分类的检查计数，以及检查耗时分布。
package metrics
