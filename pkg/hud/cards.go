package hud

import (
	"github.com/decker502/starlight/internal/github"
)

// Carousel GitHub 卡片轮播，同一时刻只显示一张卡片
//
// 卡片异步加载：SetCards 之前轮播为空，Next/Prev 不做任何事。
type Carousel struct {
	cards []*github.Card
	index int

	// OnShow 显示卡片后的回调（可选）
	OnShow func(index int)
}

// NewCarousel 创建轮播
func NewCarousel(cards []*github.Card) *Carousel {
	c := &Carousel{}
	c.SetCards(cards)
	return c
}

// SetCards 替换卡片，当前序号超出新数量时回到 0
func (c *Carousel) SetCards(cards []*github.Card) {
	c.cards = cards
	if c.index >= len(cards) {
		c.index = 0
	}
}

// Len 返回卡片数量
func (c *Carousel) Len() int {
	return len(c.cards)
}

// Index 返回当前卡片序号
func (c *Carousel) Index() int {
	return c.index
}

// Current 返回当前卡片，没有卡片时返回 nil
func (c *Carousel) Current() *github.Card {
	if len(c.cards) == 0 {
		return nil
	}
	return c.cards[c.index]
}

// Show 显示第 i 张卡片
//
// 返回:
//   - bool: i 越界时返回 false，当前卡片不变
func (c *Carousel) Show(i int) bool {
	if i < 0 || i >= len(c.cards) {
		return false
	}
	c.index = i
	if c.OnShow != nil {
		c.OnShow(i)
	}
	return true
}

// Next 下一张，末尾回到第一张
func (c *Carousel) Next() {
	if n := len(c.cards); n > 0 {
		c.Show((c.index + 1) % n)
	}
}

// Prev 上一张，第一张回到末尾
func (c *Carousel) Prev() {
	if n := len(c.cards); n > 0 {
		c.Show((c.index - 1 + n) % n)
	}
}

// Swipe 处理水平滑动：向左滑显示下一张，向右滑显示上一张
//
// 参数:
//   - dir: utils.PointerTracker.Swipe 的返回值
func (c *Carousel) Swipe(dir int) {
	switch {
	case dir < 0:
		c.Next()
	case dir > 0:
		c.Prev()
	}
}

// Dots 返回每张卡片对应的圆点是否激活
func (c *Carousel) Dots() []bool {
	dots := make([]bool, len(c.cards))
	if len(dots) > 0 {
		dots[c.index] = true
	}
	return dots
}
