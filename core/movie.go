package core

import "strings"

// Movie 是影片目录中的一条不可变记录（强类型字段，不做按列名的动态访问）。
//
// ID 在多次加载之间唯一且稳定；缺少必填字段的记录在加载阶段即被剔除，
// 核心链路不做任何缺失值填充。
type Movie struct {
	ID    int64
	Title string
	Year  int

	// Genres 是多值类别（源数据以逗号分隔）
	Genres []string
	// GenreCode 是预编码的类别值（genre_encoded）
	GenreCode float64

	Country     string
	Duration    float64 // 分钟
	DurationLog float64

	Directors string
	Actors    string

	AvgVote        float64
	TotalVotes     float64
	WeightedRating float64

	// 情绪属性（小范围数值）
	Humor   float64
	Rhythm  float64
	Effort  float64
	Tension float64
	Erotism float64

	Description string
}

// HasGenre 判断影片是否包含某个类别（大小写不敏感）。
func (m *Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(strings.TrimSpace(g), strings.TrimSpace(genre)) {
			return true
		}
	}
	return false
}

// MovieLookup 按 ID 从完整目录解析影片，顺序与 ids 一致，不存在的 ID 被跳过。
// 喜欢/不喜欢的影片可能已被过滤条件排除在候选集之外，但仍需参与画像计算，
// 因此画像计算总是通过 MovieLookup 查询完整目录。
type MovieLookup interface {
	Lookup(ids []int64) []*Movie
}
