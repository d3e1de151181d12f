package playlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/filter"
	"github.com/rushteam/tunekit/pipeline"
	"github.com/rushteam/tunekit/rank"
	"github.com/rushteam/tunekit/recall"
	"github.com/rushteam/tunekit/rerank"
	"github.com/rushteam/tunekit/similarity"
)

// ErrSeedNotFound 表示种子曲目不在曲库中：构建的唯一致命错误，不产出部分结果。
var ErrSeedNotFound = core.NewDomainError(core.ModulePlaylist, core.ErrorCodeSeedNotFound, "playlist: seed track not found")

// Options 是 Builder 的可选配置。零值可用。
type Options struct {
	// AuthorPolicy 决定作者相似度形态，空值取 similarity.AuthorPolicyBinary。
	AuthorPolicy similarity.AuthorPolicy

	// ExcludeIDs 是调用方提供的排除名单；种子 id 始终隐式排除。
	ExcludeIDs []int64

	// ExcludeSeedAuthor 为 true 时剔除种子作者的全部其它曲目。
	ExcludeSeedAuthor bool

	// Rules 是 CEL 排除规则，求值为 true 的候选被过滤。
	// 例如 "meta.release_key < 1950.0"。
	Rules []string

	// Parallelism 是打分分片数，<= 0 时取 GOMAXPROCS。
	Parallelism int

	// Scene 标记调用场景，仅用于观测。
	Scene string

	Logger *slog.Logger
}

// Builder 实现固定排名的贪心策略：对种子一次性排序全量候选，
// 随后按序贪心选取。被作者上限跳过的候选永久出局，不做二次机会；
// 也不会随着选曲推进对“当前曲目”做迭代重排（两种历史策略中取其一，
// 不混用）。
type Builder struct {
	catalog core.Catalog
	opts    Options
	log     *slog.Logger

	ruleFilters []*filter.RuleFilter
}

// NewBuilder 创建歌单构建器。CEL 规则在这里编译，表达式非法时报错。
func NewBuilder(cat core.Catalog, opts Options) (*Builder, error) {
	if cat == nil {
		return nil, core.NewDomainError(core.ModulePlaylist, core.ErrorCodeInvalidInput, "playlist: catalog is nil")
	}

	b := &Builder{catalog: cat, opts: opts, log: opts.Logger}
	if b.log == nil {
		b.log = slog.Default()
	}

	for _, expr := range opts.Rules {
		rf, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", expr, err)
		}
		b.ruleFilters = append(b.ruleFilters, rf)
	}
	return b, nil
}

// Build 从种子曲目构建歌单。
//
// 约定：
//   - 种子不在曲库中 → ErrSeedNotFound，无部分结果
//   - maxSize <= 0 或权重非法 → INVALID_INPUT
//   - 候选耗尽 → 正常返回较短歌单，State = StateExhausted
//
// 同一输入两次调用产出完全相同的歌单：打分无随机性，
// 平分按 id 升序裁决。
func (b *Builder) Build(
	ctx context.Context,
	seedID int64,
	weights similarity.Weights,
	maxSize int,
	maxPerAuthor int,
) (*Playlist, error) {
	if maxSize <= 0 {
		return nil, core.NewDomainError(core.ModulePlaylist, core.ErrorCodeInvalidInput, "playlist: maxSize must be positive")
	}

	scorer, err := similarity.NewScorer(weights, b.opts.AuthorPolicy)
	if err != nil {
		return nil, core.NewDomainError(core.ModulePlaylist, core.ErrorCodeInvalidInput, "playlist: "+err.Error())
	}

	seed, err := b.catalog.GetTrack(ctx, seedID)
	if err != nil {
		if core.IsTrackNotFound(err) {
			return nil, ErrSeedNotFound
		}
		return nil, fmt.Errorf("resolve seed %d: %w", seedID, err)
	}

	rctx := &core.RecommendContext{
		SeedID: seedID,
		Seed:   seed,
		Scene:  b.opts.Scene,
	}

	p := &pipeline.Pipeline{Nodes: b.nodes(scorer, maxSize, maxPerAuthor)}

	b.log.Debug("playlist build started",
		"seed_id", seedID, "max_size", maxSize, "max_per_author", maxPerAuthor)

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, fmt.Errorf("playlist pipeline: %w", err)
	}

	result := b.assemble(ctx, seed, items, maxSize)

	b.log.Debug("playlist build finished",
		"seed_id", seedID, "selected", result.Len(), "state", string(result.State))
	return result, nil
}

// nodes 组装静态策略的 Node 链。
func (b *Builder) nodes(scorer *similarity.Scorer, maxSize, maxPerAuthor int) []pipeline.Node {
	exclude := append([]int64{}, b.opts.ExcludeIDs...)

	filters := []filter.Filter{filter.NewExcludeFilter(exclude, nil, "")}
	if b.opts.ExcludeSeedAuthor {
		filters = append(filters, &filter.SeedAuthorFilter{Catalog: b.catalog})
	}
	for _, rf := range b.ruleFilters {
		filters = append(filters, rf)
	}

	return []pipeline.Node{
		&recall.CatalogRecall{Catalog: b.catalog},
		&filter.FilterNode{Filters: filters},
		&rank.SimilarityNode{
			Catalog:     b.catalog,
			Scorer:      scorer,
			Parallelism: b.opts.Parallelism,
		},
		&rerank.AuthorCapNode{MaxPerAuthor: maxPerAuthor, Catalog: b.catalog},
		&rerank.TopNNode{N: maxSize},
	}
}

// assemble 把选中的候选补全为带展示属性的歌单，种子行恒在第一位。
// 单条曲目的曲库回查失败只影响该行（Found=false），不使整体失败。
func (b *Builder) assemble(ctx context.Context, seed *core.Track, items []*core.Item, maxSize int) *Playlist {
	out := &Playlist{
		SeedID:  seed.ID,
		Entries: make([]Entry, 0, len(items)+1),
		State:   StateDone,
	}
	out.Entries = append(out.Entries, newEntry(seed.ID, 0, false, seed))

	for _, it := range items {
		if it == nil {
			continue
		}
		t, err := b.catalog.GetTrack(ctx, it.ID)
		if err != nil {
			b.log.Warn("playlist entry metadata lookup failed, emitting bare entry",
				"track_id", it.ID)
			t = nil
		}
		out.Entries = append(out.Entries, newEntry(it.ID, it.Score, true, t))
	}

	if out.Len() < maxSize {
		out.State = StateExhausted
	}
	return out
}
