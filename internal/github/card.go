package github

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // 头像格式
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/url"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/starlight/pkg/imgutil"
)

// Profile /users/{login} 响应中用到的字段
type Profile struct {
	Login     string  `json:"login"`
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL string  `json:"avatar_url"`
	ReposURL  string  `json:"repos_url"`
	Followers int     `json:"followers"`
}

// Repo /users/{login}/repos 响应中的一项
type Repo struct {
	Name            string  `json:"name"`
	Language        *string `json:"language"`
	StargazersCount int     `json:"stargazers_count"`
	ForksCount      int     `json:"forks_count"`
}

// SearchResult 搜索接口只用到总数
type SearchResult struct {
	TotalCount int `json:"total_count"`
}

// LanguageCount 一种语言及使用它的仓库数
type LanguageCount struct {
	Language string
	Repos    int
}

// Card 一张 GitHub 资料卡
type Card struct {
	Name      string // 显示名，缺失时为 login
	Handle    string // "@login"
	Bio       string
	AvatarURL string

	Stars     int
	Forks     int
	Followers int
	Commits   int
	PRs       int
	RepoCount int

	// Languages 按仓库数降序，数量相同时保持首次出现的顺序
	Languages []LanguageCount

	// Avatar 去掉透明边框并缩放后的头像，可能为 nil
	Avatar image.Image
}

// UserURL 返回用户资料地址
func (c *Client) UserURL(login string) string {
	return fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(login))
}

func (c *Client) commitSearchURL(login string) string {
	return fmt.Sprintf("%s/search/commits?q=%s", c.baseURL, url.QueryEscape("author:"+login))
}

func (c *Client) prSearchURL(login string) string {
	return fmt.Sprintf("%s/search/issues?q=%s", c.baseURL, url.QueryEscape("is:pr author:"+login))
}

// FetchProfile 获取用户资料
func (c *Client) FetchProfile(ctx context.Context, login string) (*Profile, error) {
	var p Profile
	if err := c.FetchJSON(ctx, c.UserURL(login), &p); err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", login, err)
	}
	return &p, nil
}

// BuildCard 为一份资料拉取仓库和搜索统计并汇总成卡片
//
// 仓库列表、提交搜索和 PR 搜索并发请求，任一失败则整体失败。
func (c *Client) BuildCard(ctx context.Context, p *Profile) (*Card, error) {
	reposURL := p.ReposURL
	if reposURL == "" {
		reposURL = c.UserURL(p.Login) + "/repos"
	}

	var (
		repos   []Repo
		commits SearchResult
		prs     SearchResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.FetchJSON(gctx, reposURL, &repos) })
	g.Go(func() error { return c.FetchJSON(gctx, c.commitSearchURL(p.Login), &commits) })
	g.Go(func() error { return c.FetchJSON(gctx, c.prSearchURL(p.Login), &prs) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build card for %s: %w", p.Login, err)
	}

	return Summarize(p, repos, commits, prs), nil
}

// Summarize 从已拉取的数据计算卡片内容
func Summarize(p *Profile, repos []Repo, commits, prs SearchResult) *Card {
	card := &Card{
		Name:      p.Login,
		Handle:    "@" + p.Login,
		AvatarURL: p.AvatarURL,
		Followers: p.Followers,
		Commits:   commits.TotalCount,
		PRs:       prs.TotalCount,
		RepoCount: len(repos),
	}
	if p.Name != nil && *p.Name != "" {
		card.Name = *p.Name
	}
	if p.Bio != nil {
		card.Bio = *p.Bio
	}

	index := make(map[string]int)
	for _, r := range repos {
		card.Stars += r.StargazersCount
		card.Forks += r.ForksCount

		if r.Language == nil || *r.Language == "" {
			continue
		}
		if i, ok := index[*r.Language]; ok {
			card.Languages[i].Repos++
			continue
		}
		index[*r.Language] = len(card.Languages)
		card.Languages = append(card.Languages, LanguageCount{Language: *r.Language, Repos: 1})
	}
	sort.SliceStable(card.Languages, func(i, j int) bool {
		return card.Languages[i].Repos > card.Languages[j].Repos
	})

	return card
}

// FetchAvatar 下载头像，去掉透明边框并等比缩放到 size×size 以内
//
// 头像完全透明时返回 nil, nil。
func (c *Client) FetchAvatar(ctx context.Context, avatarURL string, size int) (image.Image, error) {
	data, err := c.FetchBytes(ctx, avatarURL)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar %s: %w", avatarURL, err)
	}

	trimmed := imgutil.TrimTransparent(img, size, size)
	if trimmed == nil {
		return nil, nil
	}
	return trimmed, nil
}

// FetchCards 为多个用户并发构建卡片，结果顺序与 logins 一致
//
// 参数:
//   - avatarSize: 头像边长，<= 0 时不下载头像
//
// 头像下载失败不影响卡片，其它任何失败都会中止全部请求。
func (c *Client) FetchCards(ctx context.Context, logins []string, avatarSize int) ([]*Card, error) {
	cards := make([]*Card, len(logins))

	g, gctx := errgroup.WithContext(ctx)
	for i, login := range logins {
		g.Go(func() error {
			p, err := c.FetchProfile(gctx, login)
			if err != nil {
				return err
			}
			card, err := c.BuildCard(gctx, p)
			if err != nil {
				return err
			}

			if avatarSize > 0 && p.AvatarURL != "" {
				avatar, err := c.FetchAvatar(gctx, p.AvatarURL, avatarSize)
				if err != nil {
					log.Printf("[GitHub] Avatar for %s unavailable: %v", login, err)
				} else if avatar != nil {
					card.Avatar = avatar
				}
			}

			cards[i] = card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}
