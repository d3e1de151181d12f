package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/tunekit/core"
)

func itemWithAuthor(id, author int64) *core.Item {
	it := core.NewItem(id)
	it.Meta["author_id"] = author
	return it
}

func ids(items []*core.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestAuthorCapNode(t *testing.T) {
	tests := []struct {
		name  string
		cap   int
		input []*core.Item
		want  []int64
	}{
		{
			name: "cap of one keeps first per author",
			cap:  1,
			input: []*core.Item{
				itemWithAuthor(10, 1),
				itemWithAuthor(11, 1),
				itemWithAuthor(12, 2),
				itemWithAuthor(13, 1),
				itemWithAuthor(14, 3),
			},
			want: []int64{10, 12, 14},
		},
		{
			name: "cap of two",
			cap:  2,
			input: []*core.Item{
				itemWithAuthor(10, 1),
				itemWithAuthor(11, 1),
				itemWithAuthor(12, 1),
				itemWithAuthor(13, 2),
			},
			want: []int64{10, 11, 13},
		},
		{
			name: "zero cap disables the limit",
			cap:  0,
			input: []*core.Item{
				itemWithAuthor(10, 1),
				itemWithAuthor(11, 1),
			},
			want: []int64{10, 11},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &AuthorCapNode{MaxPerAuthor: tt.cap}
			got, err := node.Process(context.Background(), nil, tt.input)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("got %v, want %v", gotIDs, tt.want)
			}
			for i := range tt.want {
				if gotIDs[i] != tt.want[i] {
					t.Errorf("got %v, want %v", gotIDs, tt.want)
					break
				}
			}
		})
	}
}

func TestAuthorCapSkipIsPermanent(t *testing.T) {
	// the capped candidate is consumed: it never resurfaces even though
	// later candidates of other authors are removed downstream
	node := &AuthorCapNode{MaxPerAuthor: 1}
	input := []*core.Item{
		itemWithAuthor(10, 1),
		itemWithAuthor(11, 1), // capped here, gone for good
		itemWithAuthor(12, 2),
	}
	got, err := node.Process(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for _, it := range got {
		if it.ID == 11 {
			t.Fatal("capped candidate must not reappear")
		}
	}
	if _, ok := input[1].Labels["capped_author"]; !ok {
		t.Error("expected capped_author label on skipped candidate")
	}
}

func TestAuthorCapUnknownAuthorPasses(t *testing.T) {
	node := &AuthorCapNode{MaxPerAuthor: 1}
	input := []*core.Item{core.NewItem(10), core.NewItem(11)}
	got, err := node.Process(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("unknown-author candidates must pass uncapped, got %d", len(got))
	}
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		items   int
		wantLen int
	}{
		{"truncates", 2, 5, 2},
		{"shorter input untouched", 10, 3, 3},
		{"zero means no truncation", 0, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := make([]*core.Item, 0, tt.items)
			for i := 0; i < tt.items; i++ {
				input = append(input, core.NewItem(int64(i+1)))
			}
			node := &TopNNode{N: tt.n}
			got, err := node.Process(context.Background(), nil, input)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("got %d items, want %d", len(got), tt.wantLen)
			}
		})
	}
}
