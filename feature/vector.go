package feature

// Vector 是稠密特征向量
type Vector []float64

// Mean 按维度求均值；vectors 为空时返回 dim 维零向量。
func Mean(vectors []Vector, dim int) Vector {
	out := make(Vector, dim)
	if len(vectors) == 0 {
		return out
	}
	for _, v := range vectors {
		for i := range out {
			out[i] += v[i]
		}
	}
	n := float64(len(vectors))
	for i := range out {
		out[i] /= n
	}
	return out
}

// Sub 返回 v - w（新向量）
func (v Vector) Sub(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - w[i]
	}
	return out
}

// Scale 返回 v * k（新向量）
func (v Vector) Scale(k float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * k
	}
	return out
}
