package core

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// 例如 recall_source=knn、knn_distance=0.4182、filtered=filter.genre。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // filter / recall / recommender ...
}

// MergeLabel 合并同名 Label，保留历史：Value 以 '|' 累积，Source 以 ',' 累积。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "" || incoming.Source == existing.Source:
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

func putLabel(labels map[string]Label, key string, lbl Label) map[string]Label {
	if labels == nil {
		labels = make(map[string]Label)
	}
	if old, ok := labels[key]; ok {
		labels[key] = MergeLabel(old, lbl)
		return labels
	}
	labels[key] = lbl
	return labels
}
