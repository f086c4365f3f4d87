package core

// Item 是推荐链路中的统一承载结构：影片、编码向量、分数、标签。
// Movie 只读共享（来自目录快照）；Vector / Score / Labels 属于本次请求。
type Item struct {
	ID     int64
	Movie  *Movie
	Vector []float64
	// Score 在 knn 召回中为到用户画像的欧氏距离（越小越相似）
	Score  float64
	Labels map[string]Label
}

func NewItem(m *Movie) *Item {
	return &Item{
		ID:     m.ID,
		Movie:  m,
		Labels: make(map[string]Label),
	}
}

// NewItems 把影片列表包装为 Item 列表，保持顺序。
func NewItems(movies []*Movie) []*Item {
	out := make([]*Item, 0, len(movies))
	for _, m := range movies {
		if m == nil {
			continue
		}
		out = append(out, NewItem(m))
	}
	return out
}

// ItemIDs 提取 Item 的 ID，保持顺序。
func ItemIDs(items []*Item) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl Label) {
	it.Labels = putLabel(it.Labels, key, lbl)
}
