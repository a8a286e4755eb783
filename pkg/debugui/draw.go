package debugui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/starlight/pkg/utils"
)

const (
	panelWidth = 300
	rowHeight  = 20
	fontSize   = 12
	padding    = 10
)

var (
	panelBg     = color.RGBA{R: 20, G: 20, B: 28, A: 230}
	folderColor = color.RGBA{R: 150, G: 150, B: 190, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	selectedBg  = color.RGBA{R: 60, G: 40, B: 110, A: 255}
	barColor    = color.RGBA{R: 46, G: 88, B: 255, A: 255}
)

// Draw 在屏幕右上角绘制面板（隐藏时不绘制）
func (p *Panel) Draw(screen *ebiten.Image) {
	if !p.visible {
		return
	}

	face, err := utils.NewMonoFace(fontSize)
	if err != nil {
		return
	}

	rows := len(p.fields) + 2 // 两个分组标题
	if p.status != "" {
		rows++
	}
	x := float32(screen.Bounds().Dx() - panelWidth - padding)
	x += float32(utils.Lerp(panelWidth+padding, 0, p.SlideProgress()))
	y := float32(padding)
	vector.DrawFilledRect(screen, x, y, panelWidth, float32(rows*rowHeight+padding*2), panelBg, false)

	cy := y + padding
	folder := ""
	for i, f := range p.fields {
		if f.Folder != folder {
			folder = f.Folder
			drawLabel(screen, face, folder, x+padding, cy, folderColor)
			cy += rowHeight
		}

		if i == p.selected {
			vector.DrawFilledRect(screen, x+2, cy-2, panelWidth-4, rowHeight, selectedBg, false)
		}
		drawLabel(screen, face, f.Name, x+padding*2, cy, labelColor)
		drawValue(screen, face, f, x+panelWidth/2+padding, cy)
		cy += rowHeight
	}

	if p.status != "" {
		drawLabel(screen, face, p.status, x+padding, cy, folderColor)
	}
}

func drawValue(screen *ebiten.Image, face *text.GoTextFace, f *Field, x, y float32) {
	const barW, barH = 60, 10

	switch f.Kind {
	case FieldColor:
		vector.DrawFilledRect(screen, x, y, barH*2, barH+2, f.color.Color, false)
		drawLabel(screen, face, f.Format(), x+barH*2+6, y, labelColor)
	case FieldNumber:
		frac := 0.0
		if f.Max > f.Min {
			frac = (*f.number - f.Min) / (f.Max - f.Min)
		}
		frac = utils.Clamp01(frac)
		vector.StrokeRect(screen, x, y+1, barW, barH, 1, barColor, false)
		vector.DrawFilledRect(screen, x, y+1, float32(frac*barW), barH, barColor, false)
		drawLabel(screen, face, f.Format(), x+barW+6, y, labelColor)
	}
}

func drawLabel(screen *ebiten.Image, face *text.GoTextFace, s string, x, y float32, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
