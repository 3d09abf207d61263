package utils

import (
	"regexp"
	"strings"
)

// SlugMaxLength slug 基础部分的最大长度
const SlugMaxLength = 200

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugDashes       = regexp.MustCompile(`-+`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Slugify 将展示名称转换为 URL 安全的标识
// 规则: 小写 -> 去首尾空白 -> 去除非 [a-z0-9 空白 -] 字符 -> 空白转 "-" -> 合并连续 "-" -> 截断
// 结果可能为空字符串，由调用方决定兜底
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	if len(s) > SlugMaxLength {
		s = s[:SlugMaxLength]
	}
	return s
}

// IsSlug 校验是否为合法 slug（仅小写字母、数字、-）
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
