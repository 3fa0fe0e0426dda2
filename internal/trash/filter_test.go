package trash

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeItem struct {
	name      string
	path      string
	deletedAt time.Time
}

func (f fakeItem) GetName() string         { return f.name }
func (f fakeItem) GetPath() string         { return f.path }
func (f fakeItem) GetDeletedAt() time.Time { return f.deletedAt }

func names(items []fakeItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.name)
	}
	return out
}

func TestFilterByNames(t *testing.T) {
	items := []fakeItem{{name: "keep.txt"}, {name: "drop.txt"}}
	got := Filter(items, FilterOptions{
		Exclude: ExcludeOptions{Files: []string{"drop.txt"}},
	})
	if len(got) != 1 || got[0].name != "keep.txt" {
		t.Errorf("got %v, want [keep.txt]", names(got))
	}
}

func TestFilterByPatterns(t *testing.T) {
	items := []fakeItem{{name: "app.log"}, {name: "app.go"}, {name: "readme"}}
	got := Filter(items, FilterOptions{
		Exclude: ExcludeOptions{Patterns: []string{`\.log$`}},
	})
	if len(got) != 2 {
		t.Errorf("got %v, want 2 survivors", names(got))
	}
	for _, it := range got {
		if it.name == "app.log" {
			t.Error("pattern-excluded item survived")
		}
	}
}

func TestFilterByGlobs(t *testing.T) {
	items := []fakeItem{{name: "cache.tmp"}, {name: "main.go"}}
	got := Filter(items, FilterOptions{
		Exclude: ExcludeOptions{Globs: []string{"*.tmp"}},
	})
	if len(got) != 1 || got[0].name != "main.go" {
		t.Errorf("got %v, want [main.go]", names(got))
	}
}

func TestFilterBySize(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small")
	big := filepath.Join(dir, "big")
	if err := os.WriteFile(small, make([]byte, 10), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(big, make([]byte, 10*1024), 0644); err != nil {
		t.Fatal(err)
	}

	items := []fakeItem{
		{name: "small", path: small},
		{name: "big", path: big},
	}

	got := Filter(items, FilterOptions{
		Exclude: ExcludeOptions{SizeMin: "1KB"},
	})
	if len(got) != 1 || got[0].name != "big" {
		t.Errorf("SizeMin: got %v, want [big]", names(got))
	}

	got = Filter(items, FilterOptions{
		Exclude: ExcludeOptions{SizeMax: "1KB"},
	})
	if len(got) != 1 || got[0].name != "small" {
		t.Errorf("SizeMax: got %v, want [small]", names(got))
	}
}

func TestFilterByPeriod(t *testing.T) {
	now := time.Now()
	items := []fakeItem{
		{name: "recent", deletedAt: now.Add(-24 * time.Hour)},
		{name: "ancient", deletedAt: now.Add(-90 * 24 * time.Hour)},
	}

	got := Filter(items, FilterOptions{Include: IncludeOptions{Period: 7}})
	if len(got) != 1 || got[0].name != "recent" {
		t.Errorf("got %v, want [recent]", names(got))
	}

	// Period zero keeps everything.
	got = Filter(items, FilterOptions{})
	if len(got) != 2 {
		t.Errorf("got %v, want both", names(got))
	}
}
