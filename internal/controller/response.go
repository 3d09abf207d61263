package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafe_admin_v1/internal/service"
	"cafe_admin_v1/pkg/logger"
)

// ==================== 统一响应 ====================
// 成功: {"ok": true, ...}
// 失败: {"ok": false, "error": code, "message": msg, "details": {field: rule}}

func respondOK(c *gin.Context, data gin.H) {
	body := gin.H{"ok": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func respondError(c *gin.Context, err error) {
	appErr := service.AsAppError(err)

	if appErr.Kind == service.KindServer {
		// 底层错误只进日志
		logger.L().Error("请求处理失败",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	body := gin.H{
		"ok":      false,
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["details"] = appErr.Fields
	}
	c.AbortWithStatusJSON(appErr.Kind.HTTPStatus(), body)
}

// bindJSON 解析请求体，失败时直接写 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, service.ValidationError(err))
		return false
	}
	return true
}

// pathID 解析路径中的数字 ID
func pathID(c *gin.Context, name string, invalid error) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, invalid)
		return 0, false
	}
	return id, true
}
