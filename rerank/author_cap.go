// Package rerank 提供排序结果上的重排 Node：作者多样性上限与 TopN 截断。
package rerank

import (
	"context"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/pipeline"
	"github.com/rushteam/tunekit/pkg/conv"
	"github.com/rushteam/tunekit/pkg/utils"
)

// AuthorCapNode 按原始排序顺序单次遍历候选，限制每个作者最多出现 MaxPerAuthor 次。
// 超限候选被永久丢弃：上限针对原始排名顺序求值，被跳过的候选
// 不会因为后面的候选被消耗而获得第二次机会。
//
// 作者 id 优先从 item.Meta["author_id"] 读取，读不到时回查曲库；
// 仍然拿不到作者的候选不计入任何上限，直接保留。
type AuthorCapNode struct {
	// MaxPerAuthor 是每个作者的最大出现次数，<= 0 表示不限制。
	MaxPerAuthor int

	// Catalog 用于 Meta 缺失时回查作者 id（可选）。
	Catalog core.Catalog
}

func (n *AuthorCapNode) Name() string        { return "rerank.author_cap" }
func (n *AuthorCapNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *AuthorCapNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.MaxPerAuthor <= 0 || len(items) == 0 {
		return items, nil
	}

	counts := make(map[int64]int, 32)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		authorID, ok := n.authorOf(ctx, it)
		if !ok {
			out = append(out, it)
			continue
		}

		if counts[authorID] >= n.MaxPerAuthor {
			it.PutLabel("capped_author", utils.Label{Value: "true", Source: "rerank"})
			continue
		}
		counts[authorID]++
		out = append(out, it)
	}

	return out, nil
}

func (n *AuthorCapNode) authorOf(ctx context.Context, it *core.Item) (int64, bool) {
	if id, ok := conv.ToInt64(it.Meta["author_id"]); ok {
		return id, true
	}
	if n.Catalog != nil {
		t, err := n.Catalog.GetTrack(ctx, it.ID)
		if err == nil {
			return t.AuthorID, true
		}
	}
	return 0, false
}
