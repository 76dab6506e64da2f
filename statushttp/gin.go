package statushttp

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

func RegisterGinRoutes(r gin.IRouter, cfg Config) error {
	if r == nil {
		return fmt.Errorf("router is nil")
	}
	h, err := newStatusHandlers(cfg)
	if err != nil {
		return err
	}

	basePath := normalizeBasePath(cfg.BasePath)
	r.GET(joinPath(basePath, "/claude/status"), h.claudeStatus)
	r.GET(joinPath(basePath, "/cursor/status"), h.cursorStatus)
	r.GET(joinPath(basePath, "/codex/status"), h.codexStatus)
	r.GET(joinPath(basePath, "/debug-auth"), h.debugAuth)
	return nil
}
