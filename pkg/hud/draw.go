package hud

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/starlight/internal/github"
)

// Draw 绘制界面（在星空之上）
func (h *HUD) Draw(screen *ebiten.Image) {
	accent, dark := h.accentColors()

	for _, b := range h.Nav.Buttons().Buttons {
		h.drawButton(screen, b.Bounds, b.Label, b.Active, accent, dark)
	}
	for _, b := range h.Motion.Buttons {
		h.drawButton(screen, b.Bounds, b.Label, b.Active, accent, dark)
	}
	for _, t := range h.Toggles {
		h.drawButton(screen, t.Bounds, t.Label, t.Active, accent, dark)
	}

	h.drawTitle(screen, accent)

	y := float64(h.titlePos.Y + titleSize + 24)
	for _, line := range h.bodyLines {
		drawText(screen, line, h.bodyFace, float64(h.titlePos.X), y, textColor, true)
		y += bodySize + 8
	}

	if h.ShowsCards() {
		h.drawCards(screen, accent, dark)
	}

	// 左下角：面板标签和指针坐标
	drawText(screen, h.Nav.Label(), h.navFace, margin, float64(h.height-margin-navSize*2-8), accent, true)
	drawText(screen, h.Nav.Coords(), h.monoFace, margin, float64(h.height-margin-monoSize), dimColor, false)

	for _, d := range h.Nav.Dots().Buttons {
		drawDot(screen, d.Bounds, d.Active, accent, dark)
	}

	if h.stats != "" {
		w := text.Advance(h.stats, h.monoFace)
		drawText(screen, h.stats, h.monoFace, float64(h.width-margin)-w, float64(h.height-margin*2-monoSize-dotRadius*2), dimColor, false)
	}
}

func (h *HUD) drawButton(screen *ebiten.Image, r image.Rectangle, label string, active bool, accent, dark color.Color) {
	if r.Empty() {
		return
	}

	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, hh := float32(r.Dx()), float32(r.Dy())
	fill := color.Color(panelColor)
	fg := color.Color(dimColor)
	if active {
		fill = dark
		fg = textColor
	}
	vector.DrawFilledRect(screen, x, y, w, hh, fill, false)
	vector.StrokeRect(screen, x, y, w, hh, 1, accent, false)

	tw := text.Advance(label, h.navFace)
	tx := float64(r.Min.X) + (float64(r.Dx())-tw)/2
	ty := float64(r.Min.Y) + (float64(r.Dy())-navSize*1.3)/2
	drawText(screen, label, h.navFace, tx, ty, fg, false)
}

func (h *HUD) drawTitle(screen *ebiten.Image, accent color.Color) {
	title := h.Nav.Active().Title
	x, y := float64(h.titlePos.X), float64(h.titlePos.Y)
	drawText(screen, title.Text(), h.titleFace, x, y, textColor, true)

	if caret, visible := title.Caret(); visible {
		drawText(screen, caret, h.titleFace, float64(h.caretRect.Min.X), y, accent, false)
	}
}

func (h *HUD) drawCards(screen *ebiten.Image, accent, dark color.Color) {
	r := h.cardRect
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), panelColor, false)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, accent, false)

	card := h.Cards.Current()
	if card == nil {
		drawText(screen, h.cardsStatus, h.bodyFace, float64(r.Min.X+margin), float64(r.Min.Y+margin), dimColor, false)
		return
	}

	h.drawButton(screen, h.prevRect, "<", false, accent, dark)
	h.drawButton(screen, h.nextRect, ">", false, accent, dark)

	x := float64(r.Min.X + margin)
	y := float64(r.Min.Y + margin)
	if img := h.avatarImage(card); img != nil {
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		scale := float64(avatarSize) / float64(max(b.Dx(), b.Dy()))
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}

	tx := x + avatarSize + margin
	drawText(screen, card.Name, h.bodyFace, tx, y, textColor, true)
	drawText(screen, card.Handle, h.monoFace, tx, y+bodySize+6, dimColor, false)
	if card.Bio != "" {
		drawText(screen, card.Bio, h.monoFace, tx, y+bodySize+monoSize+14, dimColor, false)
	}

	y += avatarSize + margin
	rows := [][2]string{
		{fmt.Sprintf("★ %d", card.Stars), fmt.Sprintf("forks %d", card.Forks)},
		{fmt.Sprintf("followers %d", card.Followers), fmt.Sprintf("repos %d", card.RepoCount)},
		{fmt.Sprintf("commits %d", card.Commits), fmt.Sprintf("PRs %d", card.PRs)},
	}
	for _, row := range rows {
		drawText(screen, row[0], h.monoFace, x, y, textColor, false)
		drawText(screen, row[1], h.monoFace, x+cardW/2, y, textColor, false)
		y += monoSize + 6
	}

	lx := x
	for _, lang := range card.Languages {
		w := text.Advance(lang.Language, h.monoFace) + 12
		if lx+w > float64(r.Max.X-margin) {
			break
		}
		vector.StrokeRect(screen, float32(lx), float32(y), float32(w), monoSize+8, 1, accent, false)
		drawText(screen, lang.Language, h.monoFace, lx+6, y+3, accent, false)
		lx += w + 6
	}

	for i, active := range h.Cards.Dots() {
		if i < len(h.cardDots) {
			drawDot(screen, h.cardDots[i], active, accent, dark)
		}
	}
}

// avatarImage 头像在第一次绘制时上传为 ebiten 图片
func (h *HUD) avatarImage(card *github.Card) *ebiten.Image {
	if card.Avatar == nil {
		return nil
	}
	img, ok := h.avatars[card]
	if !ok {
		img = ebiten.NewImageFromImage(card.Avatar)
		h.avatars[card] = img
	}
	return img
}

func drawDot(screen *ebiten.Image, bounds image.Rectangle, active bool, accent, dark color.Color) {
	c := bounds.Min.Add(bounds.Max).Div(2)
	if active {
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), dotRadius, accent, true)
		return
	}
	vector.StrokeCircle(screen, float32(c.X), float32(c.Y), dotRadius, 1, dark, true)
}

// drawText 绘制文字，shadow 为 true 时先绘制偏移 2 像素的阴影
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color, shadow bool) {
	if s == "" || face == nil {
		return
	}

	if shadow {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+2, y+2)
		op.ColorScale.ScaleWithColor(shadowCol)
		text.Draw(screen, s, face, op)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
