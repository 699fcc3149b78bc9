package progress

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type numericKind int

const (
	numericAbsent numericKind = iota
	numericNumber
	numericText
)

// Numeric 表示存储层返回的宽松数值字段。
// 底层列可能以数字或文本形式出现（sqlite 的 NUMERIC 列是动态类型），
// 缺失时为 absent。所有歧义都收敛在 Float64 这一个转换点上。
type Numeric struct {
	kind numericKind
	num  float64
	text string
}

// Number 构造数字形式的 Numeric
func Number(v float64) Numeric {
	return Numeric{kind: numericNumber, num: v}
}

// Text 构造文本形式的 Numeric
func Text(s string) Numeric {
	return Numeric{kind: numericText, text: s}
}

// Absent 构造缺失值
func Absent() Numeric {
	return Numeric{}
}

// Float64 将宽松数值收敛为确定的有限浮点数。
// 缺失、非有限数字、无法解析的文本一律得到 0，该操作永不失败。
func (n Numeric) Float64() float64 {
	switch n.kind {
	case numericNumber:
		if math.IsNaN(n.num) || math.IsInf(n.num, 0) {
			return 0
		}
		return n.num
	case numericText:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n.text), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Scan 实现 sql.Scanner，兼容驱动返回的各种表示
func (n *Numeric) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*n = Absent()
	case float64:
		*n = Number(v)
	case int64:
		*n = Number(float64(v))
	case []byte:
		*n = Text(string(v))
	case string:
		*n = Text(v)
	default:
		return fmt.Errorf("unsupported numeric source type %T", value)
	}
	return nil
}

// Value 实现 driver.Valuer
func (n Numeric) Value() (driver.Value, error) {
	switch n.kind {
	case numericNumber:
		return n.num, nil
	case numericText:
		return n.text, nil
	default:
		return nil, nil
	}
}

// GormDataType 指定迁移时的列类型
func (Numeric) GormDataType() string {
	return "numeric"
}
