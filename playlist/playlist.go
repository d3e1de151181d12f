// Package playlist 是 tunekit 的对外入口：从种子曲目出发，
// 经过 召回 → 过滤 → 相似度排序 → 作者上限 → 截断 的 Pipeline，
// 贪心构建一条有界、多样化的歌单，并补全展示属性。
package playlist

import (
	"sort"

	"github.com/rushteam/tunekit/core"
)

// State 是构建结束时的终态。
type State string

const (
	// StateDone 表示歌单达到了请求的大小。
	StateDone State = "done"

	// StateExhausted 表示候选在达到请求大小前耗尽。
	// 这是正常终态，产出一条较短的歌单，不是错误。
	StateExhausted State = "exhausted"
)

// Entry 是歌单中的一行：曲目 id、得分与展示属性。
// 种子行 Scored 为 false（种子没有得分）；曲库回查失败时
// Found 为 false 且展示属性为零值，整体装配不失败。
type Entry struct {
	TrackID int64   `json:"track_id"`
	Score   float64 `json:"score"`
	Scored  bool    `json:"scored"`
	Found   bool    `json:"found"`

	Title      string   `json:"title,omitempty"`
	AuthorName string   `json:"author_name,omitempty"`
	AuthorID   int64    `json:"author_id,omitempty"`
	Categories []int64  `json:"categories,omitempty"`
	ReleaseKey float64  `json:"release_key,omitempty"`
	Topics     [3]int64 `json:"topics,omitempty"`
	Features   [3]int64 `json:"features,omitempty"`
}

// Playlist 是构建结果：第一行恒为种子，其后为按选中顺序排列的候选。
type Playlist struct {
	SeedID  int64   `json:"seed_id"`
	Entries []Entry `json:"entries"`
	State   State   `json:"state"`
}

// Len 返回非种子部分的长度。
func (p *Playlist) Len() int {
	if len(p.Entries) == 0 {
		return 0
	}
	return len(p.Entries) - 1
}

// TrackIDs 返回全部曲目 id（含种子，顺序与 Entries 一致）。
func (p *Playlist) TrackIDs() []int64 {
	ids := make([]int64, 0, len(p.Entries))
	for _, e := range p.Entries {
		ids = append(ids, e.TrackID)
	}
	return ids
}

// newEntry 从曲目填充一行；t 为 nil 表示曲库回查失败。
func newEntry(id int64, score float64, scored bool, t *core.Track) Entry {
	e := Entry{TrackID: id, Score: score, Scored: scored}
	if t == nil {
		return e
	}
	e.Found = true
	e.Title = t.Title
	e.AuthorName = t.AuthorName
	e.AuthorID = t.AuthorID
	e.ReleaseKey = t.ReleaseKey
	e.Topics = t.Topics
	e.Features = t.Features
	if len(t.Categories) > 0 {
		e.Categories = make([]int64, 0, len(t.Categories))
		for c := range t.Categories {
			e.Categories = append(e.Categories, c)
		}
		sort.Slice(e.Categories, func(i, j int) bool { return e.Categories[i] < e.Categories[j] })
	}
	return e
}
