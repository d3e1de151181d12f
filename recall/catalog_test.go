package recall

import (
	"context"
	"testing"

	"github.com/rushteam/tunekit/catalog"
	"github.com/rushteam/tunekit/core"
)

func seededContext(cat core.Catalog, seedID int64) *core.RecommendContext {
	seed, _ := cat.GetTrack(context.Background(), seedID)
	return &core.RecommendContext{SeedID: seedID, Seed: seed}
}

func TestCatalogRecall(t *testing.T) {
	cat := catalog.NewMemory([]core.Track{
		{ID: 1, AuthorID: 100, AuthorName: "a", Title: "seed", ReleaseKey: 1980},
		{ID: 2, AuthorID: 200, AuthorName: "b", Title: "other", ReleaseKey: 1990},
		{ID: 3, AuthorID: 300, AuthorName: "c", Title: "third", ReleaseKey: 2000},
	})

	tests := []struct {
		name        string
		includeSeed bool
		wantIDs     []int64
	}{
		{"seed excluded by default", false, []int64{2, 3}},
		{"include seed", true, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &CatalogRecall{Catalog: cat, IncludeSeed: tt.includeSeed}
			items, err := node.Process(context.Background(), seededContext(cat, 1), nil)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if items[i].ID != want {
					t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, want)
				}
			}
		})
	}
}

func TestCatalogRecallMetaAndLabels(t *testing.T) {
	cat := catalog.NewMemory([]core.Track{
		{ID: 1, AuthorID: 100},
		{ID: 2, AuthorID: 200, AuthorName: "someone", Title: "other", ReleaseKey: 1990},
	})

	node := &CatalogRecall{Catalog: cat}
	items, err := node.Process(context.Background(), seededContext(cat, 1), nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	it := items[0]
	// 下游的作者上限/种子作者过滤依赖这些 Meta 字段
	if got, _ := it.Meta["author_id"].(int64); got != 200 {
		t.Errorf("Meta[author_id] = %v, want 200", it.Meta["author_id"])
	}
	if got, _ := it.Meta["release_key"].(float64); got != 1990 {
		t.Errorf("Meta[release_key] = %v, want 1990", it.Meta["release_key"])
	}
	if got, _ := it.Meta["title"].(string); got != "other" {
		t.Errorf("Meta[title] = %v", it.Meta["title"])
	}
	if got, _ := it.Meta["author_name"].(string); got != "someone" {
		t.Errorf("Meta[author_name] = %v", it.Meta["author_name"])
	}

	lbl, ok := it.Labels["recall_source"]
	if !ok || lbl.Value != "catalog" || lbl.Source != "recall" {
		t.Errorf("recall_source label = %+v", lbl)
	}
}

// nilTrackCatalog 在快照中夹带 nil 条目。
type nilTrackCatalog struct{}

func (nilTrackCatalog) GetTrack(context.Context, int64) (*core.Track, error) {
	return nil, core.ErrTrackNotFound
}

func (nilTrackCatalog) AllTracks(context.Context) ([]*core.Track, error) {
	return []*core.Track{{ID: 1}, nil, {ID: 2}}, nil
}

func TestCatalogRecallSkipsNilTracks(t *testing.T) {
	node := &CatalogRecall{Catalog: nilTrackCatalog{}}
	items, err := node.Process(context.Background(), &core.RecommendContext{SeedID: 99}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("items = [%d %d], want [1 2]", items[0].ID, items[1].ID)
	}
}

func TestCatalogRecallNilCatalog(t *testing.T) {
	node := &CatalogRecall{}
	items, err := node.Process(context.Background(), &core.RecommendContext{SeedID: 1}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if items != nil {
		t.Errorf("items = %v, want nil", items)
	}
}
