package utils

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ==================== 金额换算 ====================
// 金额在库内一律以最小货币单位（分）存储，仅在边界处与十进制金额互转

// MaxAmount 可换算为 int64 分的最大整数金额
const MaxAmount = 92233720368547758

// ErrAmountOutOfRange 换算后的分超出 int64
var ErrAmountOutOfRange = errors.New("金额超出可表示范围")

// ToCents 十进制金额转分，四舍五入（half-up）
func ToCents(amount float64) (int64, error) {
	return DecimalToCents(decimal.NewFromFloat(amount))
}

// DecimalToCents decimal 金额转分
func DecimalToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return 0, ErrAmountOutOfRange
	}
	return cents.IntPart(), nil
}

// FromCents 分转十进制金额
func FromCents(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
