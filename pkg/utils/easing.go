package utils

import "math"

// 缓动函数
//
// 接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 目前用于调试面板的滑入动画。
// 星星的悬停缩放使用每帧固定比例的低通滤波，不走这里。

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 钳制到 [0,1]，NaN 视为 0
func Clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Progress 返回经过 elapsed 秒后一段 duration 秒的过渡进度
// duration <= 0 视为瞬间完成
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp01(elapsed / duration)
}
