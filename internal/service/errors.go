package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ==================== 错误分类 ====================

// ErrorKind 错误类别，对应 HTTP 状态码
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
	KindServer
)

// HTTPStatus 类别对应的状态码
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AppError 业务错误
// Code 为返回给客户端的短错误码，Fields 为字段级校验详情
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is 同类别同错误码即视为相同
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithErr 附带底层错误（不会暴露给客户端）
func (e *AppError) WithErr(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

func newError(kind ErrorKind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// ==================== 预定义错误 ====================

var (
	ErrNotAuthenticated   = newError(KindUnauthenticated, "not_authenticated", "未登录或会话已过期")
	ErrInvalidCredentials = newError(KindUnauthenticated, "invalid_credentials", "邮箱或密码错误")
	ErrForbidden          = newError(KindForbidden, "forbidden", "无权访问该资源")

	ErrNotFound           = newError(KindNotFound, "not_found", "资源不存在")
	ErrCafeNotFound       = newError(KindNotFound, "no_cafe", "当前用户尚未创建咖啡馆")
	ErrMenuItemNotFound   = newError(KindNotFound, "item_not_found", "菜单项不存在")
	ErrIngredientNotFound = newError(KindNotFound, "ingredient_not_found", "配料不存在")
	ErrSupplierNotFound   = newError(KindNotFound, "not_found", "供应商不存在")
	ErrEmployeeNotFound   = newError(KindNotFound, "not_found", "员工不存在")

	ErrValidation    = newError(KindInvalidInput, "validation", "参数校验失败")
	ErrNameRequired  = newError(KindInvalidInput, "name_required", "名称不能为空")
	ErrInvalidID     = newError(KindInvalidInput, "invalid_id", "无效的 ID")
	ErrInvalidCafeID = newError(KindInvalidInput, "invalid_cafe_id", "无效的咖啡馆 ID")
	ErrMissingSlug   = newError(KindInvalidInput, "missing_slug", "缺少 slug")
	ErrCafeRequired  = newError(KindInvalidInput, "no_cafe", "请先创建咖啡馆")

	ErrCafeExists    = newError(KindConflict, "cafe_exists", "当前用户已拥有咖啡馆")
	ErrEmailExists   = newError(KindConflict, "email_exists", "邮箱已被注册")
	ErrSlugExhausted = newError(KindConflict, "slug_exhausted", "无法生成唯一的 slug")
	ErrSlugConflict  = newError(KindConflict, "slug_conflict", "slug 冲突，请重试")

	ErrServer = newError(KindServer, "server_error", "服务器内部错误")
)

// ==================== 构造与转换 ====================

// FieldError 单字段校验错误
func FieldError(field, rule string) *AppError {
	e := *ErrValidation
	e.Fields = map[string]string{field: rule}
	return &e
}

// ValidationError 将绑定/校验错误转换为 InvalidInput
func ValidationError(err error) *AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		e := *ErrValidation
		e.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			e.Fields[fe.Field()] = fe.Tag()
		}
		e.Err = err
		return &e
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		e := *ErrValidation
		e.Fields = map[string]string{typeErr.Field: "type"}
		e.Err = err
		return &e
	}

	return ErrValidation.WithErr(err)
}

// AsAppError 任意错误转换为 AppError，未知错误视为服务器错误
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrServer.WithErr(err)
}

// KindOf 错误类别
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}
	return AsAppError(err).Kind
}

// storeErr 存储层错误归类
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return ErrValidation.WithErr(err)
	}
	return ErrServer.WithErr(err)
}
