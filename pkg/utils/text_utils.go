package utils

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce    sync.Once
	regularSrc  *text.GoTextFaceSource
	monoSrc     *text.GoTextFaceSource
	fontLoadErr error
)

// loadFontSources 解析内置的 Go 字体（只解析一次）
func loadFontSources() error {
	fontOnce.Do(func() {
		regularSrc, fontLoadErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if fontLoadErr != nil {
			fontLoadErr = fmt.Errorf("failed to load goregular: %w", fontLoadErr)
			return
		}
		monoSrc, fontLoadErr = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
		if fontLoadErr != nil {
			fontLoadErr = fmt.Errorf("failed to load gomono: %w", fontLoadErr)
		}
	})
	return fontLoadErr
}

// NewFace 返回指定字号的比例字体
func NewFace(size float64) (*text.GoTextFace, error) {
	if err := loadFontSources(); err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: regularSrc, Size: size}, nil
}

// NewMonoFace 返回指定字号的等宽字体（打字机和坐标显示）
func NewMonoFace(size float64) (*text.GoTextFace, error) {
	if err := loadFontSources(); err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: monoSrc, Size: size}, nil
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空格处断行，连续空白折叠为一个空格
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(textStr) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if measureTextWidth(candidate, font) <= maxWidth {
			currentLine = candidate
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词本身就超宽，按字符拆开
		if measureTextWidth(word, font) > maxWidth {
			pieces := breakWord(word, font, maxWidth)
			lines = append(lines, pieces[:len(pieces)-1]...)
			currentLine = pieces[len(pieces)-1]
			continue
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	return lines
}

// breakWord 按字符把超宽单词拆成多段，每段至少一个字符
func breakWord(word string, font *text.GoTextFace, maxWidth float64) []string {
	var pieces []string
	current := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]

		next := current + string(r)
		if current != "" && measureTextWidth(next, font) > maxWidth {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = next
	}
	return append(pieces, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	width, _ := text.Measure(textStr, font, 0)
	return width
}
