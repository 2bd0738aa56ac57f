package rule

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// registerVestingRules 注册归属计划字段的校验规则.
//
//   - hhmm: 24 小时制 "HH:MM" 时刻
//   - decimal: 非负十进制数字字符串，如 "12.5"、"0"
func registerVestingRules(v *validator.Validate) {
	// 注册失败只会发生在 tag 或函数非法时，属于编码错误
	_ = v.RegisterValidation("hhmm", validateHHMM)
	_ = v.RegisterValidation("decimal", validateDecimal)
}

// validateHHMM 校验 "HH:MM" 格式的时刻字符串.
func validateHHMM(fl validator.FieldLevel) bool {
	s := fl.Field().String()

	_, err := time.Parse("15:04", s)

	return err == nil
}

// validateDecimal 校验非负十进制数字字符串.
func validateDecimal(fl validator.FieldLevel) bool {
	s := fl.Field().String()

	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}

	return !d.IsNegative()
}
