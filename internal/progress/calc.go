package progress

import (
	"math"
	"strconv"
)

// Clamp01 将任意实数收敛到 [0, 1]，非有限输入得到 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rate 计算进度比例。目标值不为正时进度定义为 0，
// 避免除零或负目标产生的荒谬结果；其余情况为 current/target 截断到 [0,1]。
func Rate(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return Clamp01(current / target)
}

// FormatPercent 将进度比例格式化为百分比字符串，四舍五入到整数
func FormatPercent(rate float64) string {
	return strconv.Itoa(int(math.Round(Clamp01(rate)*100))) + "%"
}

// FormatValue 格式化展示用数值，最多保留两位小数
func FormatValue(v float64) string {
	rounded := math.Round(v*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
