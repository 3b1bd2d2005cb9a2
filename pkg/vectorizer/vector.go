package vectorizer

import "math"

// Vector is a sparse term-space vector: column index -> weight.
// 只存非零项，点积与线性组合都在稀疏表示上完成。
type Vector map[int]float64

// Dot 计算两个稀疏向量的点积。
// 语料行向量在 Fit 时已做 L2 归一化，因此对它们点积等价于余弦相似度。
func (v Vector) Dot(o Vector) float64 {
	// 遍历较小的一侧
	if len(o) < len(v) {
		v, o = o, v
	}
	var sum float64
	for col, x := range v {
		if y, ok := o[col]; ok {
			sum += x * y
		}
	}
	return sum
}

// Norm 返回向量的 L2 范数。
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Blend 返回 alpha*v + (1-alpha)*w 的新向量，不修改输入。
// 结果刻意不做归一化：下游打分依赖的是已归一化的语料行向量。
func Blend(alpha float64, v, w Vector) Vector {
	out := make(Vector, len(v)+len(w))
	for col, x := range v {
		out[col] += alpha * x
	}
	for col, x := range w {
		out[col] += (1 - alpha) * x
	}
	return out
}

// Centroid 返回一组向量的逐坐标算术平均；输入为空时返回空向量。
func Centroid(vs []Vector) Vector {
	out := make(Vector)
	if len(vs) == 0 {
		return out
	}
	n := float64(len(vs))
	for _, v := range vs {
		for col, x := range v {
			out[col] += x / n
		}
	}
	return out
}
