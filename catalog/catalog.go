package catalog

import (
	"sort"

	"github.com/rushteam/filmrec/core"
)

// Catalog 是一次加载得到的只读影片目录快照。
// 构建后不再修改，可以在并发请求之间共享。
type Catalog struct {
	movies []*core.Movie
	byID   map[int64]*core.Movie
	stats  Stats
}

// Stats 是目录加载统计与取值范围（用于展示过滤控件的上下界）。
type Stats struct {
	Loaded     int      `json:"loaded"`
	Dropped    int      `json:"dropped"`    // 缺少必填字段或解析失败
	Duplicates int      `json:"duplicates"` // 重复 ID（保留第一次出现）
	Genres     []string `json:"genres"`

	MinYear     int     `json:"min_year"`
	MaxYear     int     `json:"max_year"`
	MinDuration float64 `json:"min_duration"`
	MaxDuration float64 `json:"max_duration"`
}

// New 由影片列表构建目录。重复 ID 只保留第一次出现的记录，nil 被忽略。
func New(movies []*core.Movie) *Catalog {
	return newCatalog(movies, 0)
}

func newCatalog(movies []*core.Movie, dropped int) *Catalog {
	c := &Catalog{
		movies: make([]*core.Movie, 0, len(movies)),
		byID:   make(map[int64]*core.Movie, len(movies)),
	}
	c.stats.Dropped = dropped

	genres := make(map[string]struct{})
	for _, m := range movies {
		if m == nil {
			continue
		}
		if _, dup := c.byID[m.ID]; dup {
			c.stats.Duplicates++
			continue
		}
		c.byID[m.ID] = m
		c.movies = append(c.movies, m)

		for _, g := range m.Genres {
			genres[g] = struct{}{}
		}
		if len(c.movies) == 1 {
			c.stats.MinYear, c.stats.MaxYear = m.Year, m.Year
			c.stats.MinDuration, c.stats.MaxDuration = m.Duration, m.Duration
			continue
		}
		c.stats.MinYear = min(c.stats.MinYear, m.Year)
		c.stats.MaxYear = max(c.stats.MaxYear, m.Year)
		c.stats.MinDuration = min(c.stats.MinDuration, m.Duration)
		c.stats.MaxDuration = max(c.stats.MaxDuration, m.Duration)
	}

	c.stats.Loaded = len(c.movies)
	c.stats.Genres = make([]string, 0, len(genres))
	for g := range genres {
		c.stats.Genres = append(c.stats.Genres, g)
	}
	sort.Strings(c.stats.Genres)
	return c
}

// Movies 返回目录中的全部影片（加载顺序）。返回的切片可以修改，影片本身只读。
func (c *Catalog) Movies() []*core.Movie {
	out := make([]*core.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Len 返回影片数量
func (c *Catalog) Len() int { return len(c.movies) }

// Get 按 ID 获取影片
func (c *Catalog) Get(id int64) (*core.Movie, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Lookup 按 ID 批量解析影片，顺序与 ids 一致；不存在的 ID 与重复 ID 被跳过。
func (c *Catalog) Lookup(ids []int64) []*core.Movie {
	out := make([]*core.Movie, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if m, ok := c.byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Stats 返回加载统计
func (c *Catalog) Stats() Stats {
	s := c.stats
	s.Genres = append([]string(nil), c.stats.Genres...)
	return s
}
