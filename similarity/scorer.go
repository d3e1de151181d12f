// Package similarity 实现曲目两两相似度打分：五个独立维度的加权线性组合。
// 打分是纯函数：无隐藏状态、无随机性，给定 (u, v, 配置) 结果唯一。
package similarity

import (
	"fmt"
	"math"

	"github.com/rushteam/tunekit/core"
)

// AuthorPolicy 决定作者维度的相似度形态。
// 源头行为在两种形态间摇摆，这里收敛为显式配置项。
type AuthorPolicy string

const (
	// AuthorPolicyBinary 把作者 id 当作纯类别：相同为 1，不同为 0。默认策略。
	AuthorPolicyBinary AuthorPolicy = "binary"

	// AuthorPolicyDistance 把作者 id 当作有序量：1/(1+|au-av|)，
	// 距离恰好为 0 时权重翻倍，奖励完全相同的作者。
	AuthorPolicyDistance AuthorPolicy = "distance"
)

// timeDecayRate 是时间衰减的陡峭度，来自参考实现的 logistic 常数。
const timeDecayRate = 0.1

// Weights 是各维度的非负权重配置。权重为 0 表示关闭该维度，不允许为负。
type Weights struct {
	Author   float64 `yaml:"author" json:"author"`
	Category float64 `yaml:"category" json:"category"`
	Time     float64 `yaml:"time" json:"time"`
	Topic    float64 `yaml:"topic" json:"topic"`
	Feature  float64 `yaml:"feature" json:"feature"`
}

// Validate 校验权重配置：全部非负且非 NaN。
func (w Weights) Validate() error {
	for _, c := range []struct {
		name string
		val  float64
	}{
		{"author", w.Author},
		{"category", w.Category},
		{"time", w.Time},
		{"topic", w.Topic},
		{"feature", w.Feature},
	} {
		if math.IsNaN(c.val) {
			return fmt.Errorf("weight %s is NaN", c.name)
		}
		if c.val < 0 {
			return fmt.Errorf("weight %s is negative: %v", c.name, c.val)
		}
	}
	return nil
}

// Scorer 按配置好的权重与作者策略打分。零值不可用，请用 NewScorer。
type Scorer struct {
	weights Weights
	policy  AuthorPolicy
}

// NewScorer 构造 Scorer。policy 为空时取 AuthorPolicyBinary。
func NewScorer(w Weights, policy AuthorPolicy) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	switch policy {
	case "":
		policy = AuthorPolicyBinary
	case AuthorPolicyBinary, AuthorPolicyDistance:
	default:
		return nil, fmt.Errorf("unknown author policy: %q", policy)
	}
	return &Scorer{weights: w, policy: policy}, nil
}

// Weights 返回配置的权重。
func (s *Scorer) Weights() Weights { return s.weights }

// Policy 返回作者策略。
func (s *Scorer) Policy() AuthorPolicy { return s.policy }

// Score 计算两首曲目的加权相似度。
// 纯函数、无错误出口：缺失属性（空类别集等）按零贡献处理。
// 所有子项都由绝对差和集合交构成，两个方向打分结果相同。
func (s *Scorer) Score(u, v *core.Track) float64 {
	if u == nil || v == nil {
		return 0
	}

	authorW, authorSim := s.authorTerm(u, v)
	categorySim := categorySimilarity(u.Categories, v.Categories)
	timeW, timeSim := timeTerm(s.weights.Time, u.ReleaseKey, v.ReleaseKey)
	topicSim := slotOverlap(u.Topics, v.Topics)
	featureSim := slotOverlap(u.Features, v.Features) + prefixBonus(u.Features, v.Features)

	return authorW*authorSim +
		s.weights.Category*categorySim +
		timeW*timeSim +
		s.weights.Topic*topicSim +
		s.weights.Feature*featureSim
}

// authorTerm 返回作者维度的 (有效权重, 相似度)。
func (s *Scorer) authorTerm(u, v *core.Track) (float64, float64) {
	if s.policy == AuthorPolicyDistance {
		dist := math.Abs(float64(u.AuthorID) - float64(v.AuthorID))
		w := s.weights.Author
		if dist == 0 {
			// 完全相同的作者奖励双倍权重
			w *= 2
		}
		return w, 1 / (1 + dist)
	}

	if u.AuthorID == v.AuthorID {
		return s.weights.Author, 1
	}
	return s.weights.Author, 0
}

// categorySimilarity 是类别集合的重叠度：
// 集合等大时取交集大小，否则按未重叠部分打五折惩罚。
func categorySimilarity(a, b map[int64]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for id := range small {
		if _, ok := large[id]; ok {
			inter++
		}
	}

	if len(a) == len(b) {
		return float64(inter)
	}
	maxLen := len(large)
	return float64(inter) - 0.5*float64(maxLen-inter)
}

// timeTerm 返回时间维度的 (有效权重, 相似度)。
// 相似度是 Δt 的 logistic 衰减；Δt > 0 时权重按 ln(Δt+1) 缩放，
// Δt = 0 时保持基础权重（避免 ln 0）。
func timeTerm(base, ru, rv float64) (float64, float64) {
	dt := math.Abs(ru - rv)
	sim := 1 / (1 + math.Exp(timeDecayRate*dt))
	if dt > 0 {
		return base * math.Log(dt+1), sim
	}
	return base, sim
}

// slotOverlap 把每侧 3 个主导 id 看成集合，返回交集大小。
func slotOverlap(a, b [core.RankSlots]int64) float64 {
	setA := make(map[int64]struct{}, core.RankSlots)
	for _, id := range a {
		setA[id] = struct{}{}
	}
	seen := make(map[int64]struct{}, core.RankSlots)
	overlap := 0
	for _, id := range b {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := setA[id]; ok {
			overlap++
		}
	}
	return float64(overlap)
}

// prefixBonus 是严格前缀匹配奖励：rank 1 相同 +0.5，
// 且 rank 2 也相同再 +0.5，且 rank 3 也相同再 +1.0。
// 任一环断开即停止累积，不存在独立的按位奖励。
func prefixBonus(a, b [core.RankSlots]int64) float64 {
	if a[0] != b[0] {
		return 0
	}
	bonus := 0.5
	if a[1] != b[1] {
		return bonus
	}
	bonus += 0.5
	if a[2] != b[2] {
		return bonus
	}
	return bonus + 1.0
}
