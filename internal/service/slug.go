package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cafe_admin_v1/pkg/utils"
)

// DefaultSlugMaxSuffix 最大后缀序号（base, base-1 ... base-50）
const DefaultSlugMaxSuffix = 50

// SlugExistsFunc 检查 scope 内 slug 是否已占用
type SlugExistsFunc func(ctx context.Context, scopeID int64, candidate string) (bool, error)

// SlugInsertFunc 以给定 slug 落库；唯一约束冲突需返回 gorm.ErrDuplicatedKey
type SlugInsertFunc func(slug string) error

// SlugAllocator 在 scope 内分配唯一 slug
// 探测只是乐观检查，真正的保证是存储层 (scope, slug) 唯一约束；
// 插入冲突时从下一个后缀重试一次
type SlugAllocator struct {
	MaxSuffix int
	now       func() time.Time
}

// NewSlugAllocator 创建 slug 分配器
func NewSlugAllocator() *SlugAllocator {
	return &SlugAllocator{MaxSuffix: DefaultSlugMaxSuffix, now: time.Now}
}

// Base 由名称得到基础 slug，名称全部被剔除时使用时间戳占位
func (a *SlugAllocator) Base(name string) string {
	if base := utils.Slugify(name); base != "" {
		return base
	}
	return fmt.Sprintf("item-%d", a.now().UnixMilli())
}

// Allocate 返回 scope 内第一个未被占用的候选 slug
func (a *SlugAllocator) Allocate(ctx context.Context, name string, scopeID int64, exists SlugExistsFunc) (string, error) {
	slug, _, err := a.probe(ctx, a.Base(name), 0, scopeID, exists)
	return slug, err
}

// Insert 分配 slug 并落库，冲突时重试一次
func (a *SlugAllocator) Insert(ctx context.Context, name string, scopeID int64, exists SlugExistsFunc, insert SlugInsertFunc) (string, error) {
	base := a.Base(name)

	slug, n, err := a.probe(ctx, base, 0, scopeID, exists)
	if err != nil {
		return "", err
	}

	err = insert(slug)
	if err == nil {
		return slug, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", err
	}

	// 并发创建抢占了同一候选，从下一个后缀继续
	slug, _, err = a.probe(ctx, base, n+1, scopeID, exists)
	if err != nil {
		return "", err
	}
	if err := insert(slug); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrSlugConflict.WithErr(err)
		}
		return "", err
	}
	return slug, nil
}

// probe 从第 start 个候选开始探测，返回 slug 及其序号
func (a *SlugAllocator) probe(ctx context.Context, base string, start int, scopeID int64, exists SlugExistsFunc) (string, int, error) {
	for n := start; n <= a.MaxSuffix; n++ {
		candidate := candidateSlug(base, n)
		taken, err := exists(ctx, scopeID, candidate)
		if err != nil {
			return "", 0, storeErr(err)
		}
		if !taken {
			return candidate, n, nil
		}
	}
	return "", 0, ErrSlugExhausted
}

func candidateSlug(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
