package dto

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"cafe_admin_v1/pkg/utils"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	ginOnce      sync.Once
)

// Validator 服务层使用的校验器，规则与 gin 绑定一致（binding 标签）
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		configure(validate)
	})
	return validate
}

// Validate 校验结构体
func Validate(obj interface{}) error {
	return Validator().Struct(obj)
}

// RegisterGinValidation 让 gin 的绑定校验使用 JSON 字段名并支持自定义规则
func RegisterGinValidation() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			configure(v)
		}
	})
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return utils.IsSlug(fl.Field().String())
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
