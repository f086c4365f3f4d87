package catalog

import (
	"math/rand/v2"

	"github.com/rushteam/filmrec/core"
)

// 新用户引导时展示的高分影片
const (
	DefaultSampleSize    = 30
	DefaultSampleMinVote = 7.5
)

// Sample 从 avg_vote >= minVote 的影片中随机挑选最多 n 部，满足条件的不足 n 部时全部返回。
// 相同 seed 得到相同结果。
func (c *Catalog) Sample(n int, minVote float64, seed uint64) []*core.Movie {
	if n <= 0 {
		return nil
	}
	pool := make([]*core.Movie, 0, len(c.movies))
	for _, m := range c.movies {
		if m.AvgVote >= minVote {
			pool = append(pool, m)
		}
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
