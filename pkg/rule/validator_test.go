package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/vestvault/pkg/rule"
)

// TestStruct 用于测试 ValidateStruct.
type TestStruct struct {
	Name string `rule:"required"`
	Age  int    `rule:"gte=18"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	// 有效结构体
	validStruct := TestStruct{Name: "John", Age: 25}

	err := rule.ValidateStruct(validStruct)
	if err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 无效结构体：缺少 Name
	invalidStruct1 := TestStruct{Name: "", Age: 25}

	err = rule.ValidateStruct(invalidStruct1)
	if err == nil {
		t.Error("Expected error for invalid struct (missing name), got nil")
	}

	// 无效结构体：Age 小于 18
	invalidStruct2 := TestStruct{Name: "Jane", Age: 16}

	err = rule.ValidateStruct(invalidStruct2)
	if err == nil {
		t.Error("Expected error for invalid struct (age < 18), got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	// 有效 email
	err := rule.ValidateVar("test@example.com", "required,email")
	if err != nil {
		t.Errorf("Expected no error for valid email, got %v", err)
	}

	// 无效 email
	err = rule.ValidateVar("invalid-email", "required,email")
	if err == nil {
		t.Error("Expected error for invalid email, got nil")
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	// 注册自定义验证：检查字符串长度是否为偶数
	err := rule.RegisterValidation("even_length", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		return len(str)%2 == 0
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	// 测试有效字符串
	err = rule.ValidateVar("test", "even_length")
	if err != nil {
		t.Errorf("Expected no error for even length string, got %v", err)
	}

	// 测试无效字符串
	err = rule.ValidateVar("test1", "even_length")
	if err == nil {
		t.Error("Expected error for odd length string, got nil")
	}
}

// TestHHMMRule 测试 hhmm 规则对 24 小时制时刻字符串的校验.
func TestHHMMRule(t *testing.T) {
	// 有效时刻
	for _, v := range []string{"00:00", "09:00", "13:30", "23:59"} {
		if err := rule.ValidateVar(v, "hhmm"); err != nil {
			t.Errorf("Expected no error for %q, got %v", v, err)
		}
	}

	// 无效时刻
	for _, v := range []string{"24:00", "9:0", "12:60", "noon", ""} {
		if err := rule.ValidateVar(v, "hhmm"); err == nil {
			t.Errorf("Expected error for %q, got nil", v)
		}
	}
}

// TestDecimalRule 测试 decimal 规则对十进制数字字符串的校验.
func TestDecimalRule(t *testing.T) {
	// 有效数值，零也是合法配置
	for _, v := range []string{"0", "0.0", "12.5", "1000000"} {
		if err := rule.ValidateVar(v, "decimal"); err != nil {
			t.Errorf("Expected no error for %q, got %v", v, err)
		}
	}

	// 无效数值：负数与非数字
	for _, v := range []string{"-1", "12,5", "abc", ""} {
		if err := rule.ValidateVar(v, "decimal"); err == nil {
			t.Errorf("Expected error for %q, got nil", v)
		}
	}
}

// TestErrors 测试校验错误到字段映射的解析.
func TestErrors(t *testing.T) {
	err := rule.ValidateStruct(TestStruct{Name: "", Age: 16})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	fields := rule.Errors(err)
	if fields["Name"] != "required" {
		t.Errorf("Expected Name -> required, got %q", fields["Name"])
	}

	if fields["Age"] != "gte" {
		t.Errorf("Expected Age -> gte, got %q", fields["Age"])
	}
}
