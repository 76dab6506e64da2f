package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LubyRuffy/agentauthd/config"
	"github.com/LubyRuffy/agentauthd/metrics"
	"github.com/LubyRuffy/agentauthd/statushttp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "agentauthd",
		Short:         "检测本机 Claude/Cursor/Codex CLI 的认证状态并以 HTTP 暴露",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.NewConfig(config.NewViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		statushttp.RequestID(),
		ginzap.Ginzap(logger, time.RFC3339, true),
		ginzap.RecoveryWithZap(logger, true),
		cors.New(cors.Config{
			// 状态接口只读且默认只监听回环，放开来源方便本地 UI 调试。
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type"},
			MaxAge:          12 * time.Hour,
		}),
	)

	if err := statushttp.RegisterGinRoutes(r, statushttp.Config{
		BasePath:      cfg.BasePath,
		Logger:        logger,
		CursorCommand: cfg.CursorCommand,
		ProbeTimeout:  cfg.ProbeTimeout,
	}); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	base := strings.TrimRight(cfg.BasePath, "/")
	logger.Info("agentauthd listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("try", fmt.Sprintf("curl http://%s%s/claude/status", addrForLocalClient(cfg.ListenAddr), base)))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// addrForLocalClient 把监听地址换算成本机可访问的地址，仅用于启动提示。
func addrForLocalClient(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	switch host {
	case "", "0.0.0.0", "::":
		return net.JoinHostPort("127.0.0.1", port)
	}
	return listen
}
