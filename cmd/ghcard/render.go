package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/starlight/internal/github"
)

// 卡片最多展示的语言数
const maxLanguages = 4

var (
	borderColor = lipgloss.Color("#7B2CBF")

	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D724FF"))
	handleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	bioStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Italic(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E58FF")).Bold(true)
	langStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3E95B1"))
)

// renderCard 把卡片渲染为带圆角边框的文本块
//
// width 为边框内的内容宽度，过小时按 20 列处理。
func renderCard(c *github.Card, width int) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(nameStyle.Render(c.Name))
	b.WriteString(" ")
	b.WriteString(handleStyle.Render(c.Handle))

	if c.Bio != "" {
		b.WriteString("\n")
		b.WriteString(bioStyle.Width(width).Render(c.Bio))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		stat("stars", c.Stars),
		stat("forks", c.Forks),
		stat("followers", c.Followers),
	))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		stat("repos", c.RepoCount),
		stat("commits", c.Commits),
		stat("PRs", c.PRs),
	))

	if langs := languageLine(c.Languages); langs != "" {
		b.WriteString("\n\n")
		b.WriteString(langStyle.Render(langs))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width).
		Render(b.String())
}

func stat(label string, n int) string {
	cell := labelStyle.Render(label+" ") + valueStyle.Render(formatCount(n))
	return lipgloss.NewStyle().Width(16).Render(cell)
}

// languageLine 格式化前几种语言，如 "Go 12 · Lua 3"
func languageLine(langs []github.LanguageCount) string {
	if len(langs) > maxLanguages {
		langs = langs[:maxLanguages]
	}
	parts := make([]string, 0, len(langs))
	for _, l := range langs {
		parts = append(parts, fmt.Sprintf("%s %d", l.Language, l.Repos))
	}
	return strings.Join(parts, " · ")
}

// formatCount 大数字缩写：999 → "999"，1234 → "1.2k"，2500000 → "2.5M"
func formatCount(n int) string {
	switch {
	case n < 0:
		return "-" + formatCount(-n)
	case n < 1000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1000)) + "k"
	default:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
