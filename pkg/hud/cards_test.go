package hud

import (
	"reflect"
	"testing"

	"github.com/decker502/starlight/internal/github"
)

func testCards(n int) []*github.Card {
	cards := make([]*github.Card, n)
	for i := range cards {
		cards[i] = &github.Card{Name: string(rune('a' + i))}
	}
	return cards
}

func TestCarouselEmpty(t *testing.T) {
	c := NewCarousel(nil)
	c.Next()
	c.Prev()
	c.Swipe(-1)

	if c.Current() != nil || c.Index() != 0 || len(c.Dots()) != 0 {
		t.Error("空轮播应保持空状态")
	}
	if c.Show(0) {
		t.Error("空轮播 Show(0) 应返回 false")
	}
}

func TestCarouselWrap(t *testing.T) {
	tests := []struct {
		name  string
		steps []func(*Carousel)
		want  int
	}{
		{"next", []func(*Carousel){(*Carousel).Next}, 1},
		{"next wraps", []func(*Carousel){(*Carousel).Next, (*Carousel).Next, (*Carousel).Next}, 0},
		{"prev wraps", []func(*Carousel){(*Carousel).Prev}, 2},
		{"swipe left is next", []func(*Carousel){func(c *Carousel) { c.Swipe(-1) }}, 1},
		{"swipe right is prev", []func(*Carousel){func(c *Carousel) { c.Swipe(1) }}, 2},
		{"no swipe", []func(*Carousel){func(c *Carousel) { c.Swipe(0) }}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCarousel(testCards(3))
			for _, step := range tt.steps {
				step(c)
			}
			if c.Index() != tt.want {
				t.Errorf("Index = %d, want %d", c.Index(), tt.want)
			}
			if c.Current().Name != string(rune('a'+tt.want)) {
				t.Errorf("Current = %s", c.Current().Name)
			}
		})
	}
}

func TestCarouselShowAndDots(t *testing.T) {
	c := NewCarousel(testCards(3))
	var shown []int
	c.OnShow = func(i int) { shown = append(shown, i) }

	if !c.Show(2) {
		t.Fatal("Show(2) failed")
	}
	if c.Show(3) || c.Show(-1) {
		t.Error("越界 Show 应返回 false")
	}
	if !reflect.DeepEqual(c.Dots(), []bool{false, false, true}) {
		t.Errorf("Dots = %v", c.Dots())
	}
	if !reflect.DeepEqual(shown, []int{2}) {
		t.Errorf("OnShow calls = %v", shown)
	}
}

func TestCarouselSetCardsClampsIndex(t *testing.T) {
	c := NewCarousel(testCards(3))
	c.Show(2)

	c.SetCards(testCards(2))
	if c.Index() != 0 {
		t.Errorf("Index = %d, want 0 after shrinking", c.Index())
	}

	c.Show(1)
	c.SetCards(testCards(4))
	if c.Index() != 1 {
		t.Errorf("Index = %d, want 1 to be kept", c.Index())
	}
}
