// Package rank 提供候选排序 Node。
package rank

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/pipeline"
	"github.com/rushteam/tunekit/pkg/utils"
	"github.com/rushteam/tunekit/similarity"
)

// SimilarityNode 对每个候选计算与种子曲目的相似度，写入 item.Score 并降序排序。
// 分数相同的候选按 id 升序排列，保证同一输入下结果可复现。
//
// 打分是纯函数且候选间相互独立，打分遍历按分片并发执行；
// 排序以及下游的贪心选择保持串行，以维持确定性的平分规则
// 和作者上限的“跳过即消耗”语义。
type SimilarityNode struct {
	Catalog core.Catalog
	Scorer  *similarity.Scorer

	// Parallelism 是打分分片数，<= 0 时取 GOMAXPROCS。
	Parallelism int
}

func (n *SimilarityNode) Name() string        { return "rank.similarity" }
func (n *SimilarityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarityNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Scorer == nil || n.Catalog == nil || len(items) == 0 {
		return items, nil
	}
	if rctx == nil || rctx.Seed == nil {
		return nil, core.NewDomainError(core.ModulePlaylist, core.ErrorCodeInvalidInput, "rank: seed track not resolved")
	}
	seed := rctx.Seed

	shards := n.Parallelism
	if shards <= 0 {
		shards = runtime.GOMAXPROCS(0)
	}
	if shards > len(items) {
		shards = len(items)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	chunk := (len(items) + shards - 1) / shards
	for start := 0; start < len(items); start += chunk {
		end := start + chunk
		if end > len(items) {
			end = len(items)
		}
		part := items[start:end]

		eg.Go(func() error {
			for _, it := range part {
				if it == nil {
					continue
				}
				if err := egCtx.Err(); err != nil {
					return err
				}

				track, err := n.Catalog.GetTrack(egCtx, it.ID)
				if err != nil {
					// 单个候选解析失败只影响该候选：零分保留
					it.Score = 0
					it.PutLabel("rank_miss", utils.Label{Value: "track_not_found", Source: "rank"})
					continue
				}
				it.Score = n.Scorer.Score(seed, track)
				it.PutLabel("rank_method", utils.Label{Value: "similarity", Source: "rank"})
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
