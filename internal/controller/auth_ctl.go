package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup 注册
// @Summary 注册
// @Description 邮箱 + 密码注册新用户
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "注册参数"
// @Success 200 {object} map[string]interface{} "ok + user"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Failure 409 {object} map[string]interface{} "邮箱已注册"
// @Router /api/auth/signup [post]
func (a *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"user": user})
}

// Login 登录
// @Summary 登录
// @Description 校验邮箱密码，创建会话，返回令牌并写入会话 Cookie
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录参数"
// @Success 200 {object} map[string]interface{} "ok + token + expires_at + user"
// @Failure 401 {object} map[string]interface{} "邮箱或密码错误"
// @Failure 429 {object} map[string]interface{} "请求过于频繁"
// @Router /api/auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.authService.Login(c.Request.Context(), &req, service.SessionMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(resp.ExpiresAt).Seconds())
	setSessionCookie(c, resp.Token, maxAge)

	respondOK(c, gin.H{
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       resp.User,
	})
}

// Logout 注销
// @Summary 注销
// @Description 删除当前会话并清除 Cookie
// @Tags Auth (认证)
// @Produce json
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /api/auth/logout [post]
func (a *AuthController) Logout(c *gin.Context) {
	if err := a.authService.Logout(c.Request.Context(), middleware.GetPrincipal(c)); err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, "", -1)
	respondOK(c, nil)
}

// Me 当前用户
// @Summary 当前用户
// @Tags Auth (认证)
// @Produce json
// @Success 200 {object} map[string]interface{} "ok + user"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /api/auth/me [get]
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.authService.Me(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"user": user})
}

func setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.GetSessionConfig().CookieName, value, maxAge, "/", "", c.Request.TLS != nil, true)
}
