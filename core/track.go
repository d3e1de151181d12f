package core

import "context"

// RankSlots 是每首曲目携带的主导 topic/feature 槽位数。
// 上游数据准备阶段保证每首曲目恰好有 3 个按 rank 排好序的槽位（槽位 0 = rank 1）。
const RankSlots = 3

// Track 是曲库中的一首曲目：定型结构，曲库加载时构造一次，之后只读。
// Categories / Topics / Features 均为上游解析好的原生类型，
// 打分阶段不做任何字符串再解析。
type Track struct {
	ID       int64
	AuthorID int64

	// Categories 是流派/类别 id 集合，允许为空（nil 与空集等价，按零贡献处理）。
	Categories map[int64]struct{}

	// ReleaseKey 是时间邻近度使用的数值（如发行年份或其归一化值）。
	ReleaseKey float64

	// Topics / Features 是按 rank 排序的主导 topic/feature id，槽位 0 为 rank 1。
	Topics   [RankSlots]int64
	Features [RankSlots]int64

	// 展示属性，打分阶段不读取。
	Title      string
	AuthorName string
}

// HasCategory 判断曲目是否带有指定类别 id。
func (t *Track) HasCategory(id int64) bool {
	if t.Categories == nil {
		return false
	}
	_, ok := t.Categories[id]
	return ok
}

// Catalog 是曲库的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog）实现
//   - 一次构建期间曲库是只读快照，不要求实现方支持并发写
//
// 实现：
//   - catalog.Memory 内存实现
//   - catalog.StoreCatalog 基于 core.KeyValueStore（内存 / Redis）
type Catalog interface {
	// GetTrack 按 id 读取曲目，不存在时返回 ErrTrackNotFound。
	GetTrack(ctx context.Context, id int64) (*Track, error)

	// AllTracks 返回曲库的只读快照，顺序为 id 升序。
	AllTracks(ctx context.Context) ([]*Track, error)
}

// Catalog 错误定义（使用统一的 DomainError）
var (
	// ErrTrackNotFound 表示曲目不存在
	ErrTrackNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: track not found")
)

// IsTrackNotFound 检查错误是否为曲目不存在。
func IsTrackNotFound(err error) bool {
	if err == nil {
		return false
	}
	domainErr := GetDomainError(err)
	if domainErr != nil && domainErr.Module == ModuleCatalog {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
