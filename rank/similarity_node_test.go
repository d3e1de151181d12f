package rank

import (
	"context"
	"testing"

	"github.com/rushteam/tunekit/catalog"
	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/similarity"
)

func fixtureCatalog() *catalog.Memory {
	// seed is track 1; tracks 2 and 3 share its author, 4 and 5 do not
	return catalog.NewMemory([]core.Track{
		{ID: 1, AuthorID: 100, ReleaseKey: 1980},
		{ID: 2, AuthorID: 100, ReleaseKey: 1980},
		{ID: 3, AuthorID: 100, ReleaseKey: 1980},
		{ID: 4, AuthorID: 200, ReleaseKey: 1980},
		{ID: 5, AuthorID: 300, ReleaseKey: 1980},
	})
}

func itemsForIDs(ids ...int64) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(id))
	}
	return out
}

func seededContext(t *testing.T, cat core.Catalog, seedID int64) *core.RecommendContext {
	t.Helper()
	seed, err := cat.GetTrack(context.Background(), seedID)
	if err != nil {
		t.Fatalf("GetTrack(%d) error = %v", seedID, err)
	}
	return &core.RecommendContext{SeedID: seedID, Seed: seed}
}

func TestSimilarityNodeOrdersByScoreThenID(t *testing.T) {
	cat := fixtureCatalog()
	scorer, err := similarity.NewScorer(similarity.Weights{Author: 1}, similarity.AuthorPolicyBinary)
	if err != nil {
		t.Fatalf("NewScorer() error = %v", err)
	}

	node := &SimilarityNode{Catalog: cat, Scorer: scorer}
	rctx := seededContext(t, cat, 1)

	got, err := node.Process(context.Background(), rctx, itemsForIDs(5, 4, 3, 2))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 2 and 3 share the seed author (score 1, tie broken by id),
	// then 4 and 5 (score 0, tie broken by id)
	wantOrder := []int64{2, 3, 4, 5}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d items, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got id %d, want %d", i, got[i].ID, id)
		}
	}
	if got[0].Score != got[1].Score {
		t.Errorf("tied items have scores %v and %v", got[0].Score, got[1].Score)
	}
}

func TestSimilarityNodeDeterministic(t *testing.T) {
	cat := fixtureCatalog()
	scorer, _ := similarity.NewScorer(similarity.Weights{Author: 2, Time: 1}, "")
	node := &SimilarityNode{Catalog: cat, Scorer: scorer, Parallelism: 3}
	rctx := seededContext(t, cat, 1)

	first, err := node.Process(context.Background(), rctx, itemsForIDs(2, 3, 4, 5))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	second, err := node.Process(context.Background(), rctx, itemsForIDs(2, 3, 4, 5))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Score != second[i].Score {
			t.Fatalf("run mismatch at %d: (%d,%v) vs (%d,%v)",
				i, first[i].ID, first[i].Score, second[i].ID, second[i].Score)
		}
	}
}

func TestSimilarityNodeMissingTrackScoresZero(t *testing.T) {
	cat := fixtureCatalog()
	scorer, _ := similarity.NewScorer(similarity.Weights{Author: 1}, "")
	node := &SimilarityNode{Catalog: cat, Scorer: scorer}
	rctx := seededContext(t, cat, 1)

	got, err := node.Process(context.Background(), rctx, itemsForIDs(2, 999))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("missing track must be kept, got %d items", len(got))
	}
	// missing catalog entry scores zero and sorts behind the real match
	if got[1].ID != 999 || got[1].Score != 0 {
		t.Errorf("got (%d, %v), want (999, 0)", got[1].ID, got[1].Score)
	}
	if _, ok := got[1].Labels["rank_miss"]; !ok {
		t.Error("expected rank_miss label on unresolved candidate")
	}
}

func TestSimilarityNodeRequiresSeed(t *testing.T) {
	cat := fixtureCatalog()
	scorer, _ := similarity.NewScorer(similarity.Weights{Author: 1}, "")
	node := &SimilarityNode{Catalog: cat, Scorer: scorer}

	_, err := node.Process(context.Background(), &core.RecommendContext{SeedID: 1}, itemsForIDs(2))
	if err == nil {
		t.Fatal("expected error when seed is not resolved")
	}
	if !core.IsInvalidInput(err) {
		t.Errorf("want INVALID_INPUT, got %v", err)
	}
}
