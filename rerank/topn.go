package rerank

import (
	"context"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序/重排后截取前 N 个候选。
// 候选不足 N 个时原样返回：这是候选耗尽的正常终态，不是错误。
type TopNNode struct {
	// N 要保留的候选数量，<= 0 表示不截断。
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
