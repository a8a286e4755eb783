package hud

import (
	"github.com/decker502/starlight/pkg/config"
)

// TypewriterState 打字机状态
type TypewriterState int

const (
	// TypewriterTyping 逐字输出中
	TypewriterTyping TypewriterState = iota
	// TypewriterErasing 逐字擦除中，擦完后自动重新输出
	TypewriterErasing
	// TypewriterIdle 文本已完整显示
	TypewriterIdle
)

// Typewriter 逐字打出文本的标题效果
//
// 由帧间隔 dt 驱动，不使用计时器：
//   - 创建后立即输出第一个字符，之后每 speed 输出一个，最后一个字符再等待 speed 后进入 Idle
//   - Restart 先每 eraseSpeed 擦除一个字符，擦完立刻重新输出；输出或擦除过程中调用被忽略
//   - 光标每 caretBlink 切换一次可见性；悬停时固定显示 hoverChar 并暂停闪烁
type Typewriter struct {
	text  []rune
	shown int
	state TypewriterState

	speed      float64
	eraseSpeed float64
	caretBlink float64
	caretChar  string
	hoverChar  string

	acc          float64
	blinkAcc     float64
	caretVisible bool
	hover        bool
}

// NewTypewriter 创建打字机并开始输出
func NewTypewriter(text string, opts config.TypewriterOptions) *Typewriter {
	defaults := config.DefaultTypewriterOptions()
	if opts.SpeedMs <= 0 {
		opts.SpeedMs = defaults.SpeedMs
	}
	if opts.EraseSpeedMs <= 0 {
		opts.EraseSpeedMs = defaults.EraseSpeedMs
	}
	if opts.CaretBlinkMs <= 0 {
		opts.CaretBlinkMs = defaults.CaretBlinkMs
	}
	if opts.CaretChar == "" {
		opts.CaretChar = defaults.CaretChar
	}
	if opts.HoverChar == "" {
		opts.HoverChar = defaults.HoverChar
	}

	t := &Typewriter{
		text:         []rune(text),
		state:        TypewriterTyping,
		speed:        float64(opts.SpeedMs) / 1000,
		eraseSpeed:   float64(opts.EraseSpeedMs) / 1000,
		caretBlink:   float64(opts.CaretBlinkMs) / 1000,
		caretChar:    opts.CaretChar,
		hoverChar:    opts.HoverChar,
		caretVisible: true,
	}
	t.step()
	return t
}

// Update 推进 dt 秒
func (t *Typewriter) Update(dt float64) {
	if !(dt > 0) {
		return
	}

	t.blinkAcc += dt
	for t.blinkAcc >= t.caretBlink {
		t.blinkAcc -= t.caretBlink
		if !t.hover {
			t.caretVisible = !t.caretVisible
		}
	}

	if t.state == TypewriterIdle {
		return
	}

	t.acc += dt
	for t.state != TypewriterIdle {
		interval := t.interval()
		if t.acc < interval {
			break
		}
		t.acc -= interval
		t.step()
	}
	if t.state == TypewriterIdle {
		t.acc = 0
	}
}

func (t *Typewriter) interval() float64 {
	if t.state == TypewriterErasing {
		return t.eraseSpeed
	}
	return t.speed
}

// step 执行一次输出或擦除
func (t *Typewriter) step() {
	switch t.state {
	case TypewriterTyping:
		if t.shown >= len(t.text) {
			t.state = TypewriterIdle
			return
		}
		t.shown++
	case TypewriterErasing:
		if t.shown == 0 {
			t.state = TypewriterTyping
			t.step()
			return
		}
		t.shown--
	}
}

// Restart 擦除后重新输出（对应点击光标）
//
// 返回:
//   - bool: 正在输出或擦除时返回 false 且不做任何事
func (t *Typewriter) Restart() bool {
	if t.state != TypewriterIdle {
		return false
	}
	t.hover = false
	t.state = TypewriterErasing
	t.acc = 0
	t.step()
	return true
}

// SetHover 设置光标悬停状态
//
// 进入悬停时光标立即可见；离开悬停时恢复闪烁，可见性保持不变。
func (t *Typewriter) SetHover(hover bool) {
	if hover {
		t.caretVisible = true
	}
	t.hover = hover
}

// SetText 替换文本并从头输出
func (t *Typewriter) SetText(text string) {
	t.text = []rune(text)
	t.shown = 0
	t.acc = 0
	t.state = TypewriterTyping
	t.step()
}

// Text 返回当前已显示的文本
func (t *Typewriter) Text() string {
	return string(t.text[:t.shown])
}

// FullText 返回完整文本
func (t *Typewriter) FullText() string {
	return string(t.text)
}

// Caret 返回光标字符及是否可见
func (t *Typewriter) Caret() (string, bool) {
	if t.hover {
		return t.hoverChar, true
	}
	return t.caretChar, t.caretVisible
}

// State 返回当前状态
func (t *Typewriter) State() TypewriterState {
	return t.state
}
