package internal

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

type memPersistence struct {
	data  []byte
	saves int
}

func (m *memPersistence) Load() ([]byte, error) {
	return m.data, nil
}

func (m *memPersistence) Save(data []byte) error {
	m.data = data
	m.saves++
	return nil
}

type fixedTitles struct {
	title string
	calls []string
}

func (f *fixedTitles) Resolve(_ context.Context, url string) string {
	f.calls = append(f.calls, url)
	return f.title
}

func newTestStore(settings Settings) (*ItemStore, *memPersistence) {
	mem := &memPersistence{}
	store := NewItemStore(settings, mem, nil)
	return store, mem
}

func texts(store *ItemStore) []string {
	out := make([]string, 0, store.Len())
	for _, item := range store.Items() {
		out = append(out, item.Text)
	}
	return out
}

func equalTexts(t *testing.T, store *ItemStore, want []string) {
	t.Helper()
	got := texts(store)
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestLoadMissing(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d items", store.Len())
	}
}

func TestLoadEmpty(t *testing.T) {
	store, mem := newTestStore(DefaultSettings())
	mem.data = []byte("  \n")
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d items", store.Len())
	}
}

func TestLoadCorrupt(t *testing.T) {
	store, mem := newTestStore(DefaultSettings())
	mem.data = []byte(`{"not": "an array"`)
	if err := store.Load(); err == nil {
		t.Fatal("expected error for corrupt items data")
	}
}

func TestInsertEviction(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxItems = 2
	store, _ := newTestStore(settings)

	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		if err := store.Insert(ctx, text); err != nil {
			t.Fatalf("insert %q: %v", text, err)
		}
	}

	equalTexts(t, store, []string{"c", "b"})
}

func TestInsertDuplicateKeepsDateAndTitle(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())
	ctx := context.Background()

	now := time.Unix(100, 0)
	store.now = func() time.Time { return now }

	if err := store.Insert(ctx, "a"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	store.items[0].Title = "first seen"

	now = time.Unix(150, 0)
	if err := store.Insert(ctx, "b"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	now = time.Unix(200, 0)
	if err := store.Insert(ctx, "a"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	equalTexts(t, store, []string{"a", "b"})

	a := store.Items()[0]
	if a.Date != 100 {
		t.Errorf("expected original date 100, got %d", a.Date)
	}
	if a.Title != "first seen" {
		t.Errorf("expected original title preserved, got %q", a.Title)
	}
}

func TestInsertRejects(t *testing.T) {
	settings := DefaultSettings()
	settings.HeavyPaste = 10
	store, mem := newTestStore(settings)
	ctx := context.Background()

	rejected := []string{
		"",
		"   \n\t",
		"file:///home/user/secret",
		"this text is longer than ten characters",
	}

	for _, text := range rejected {
		if err := store.Insert(ctx, text); err != nil {
			t.Fatalf("insert %q: %v", text, err)
		}
	}

	if store.Len() != 0 {
		t.Errorf("expected no items stored, got %d", store.Len())
	}
	if mem.saves != 0 {
		t.Errorf("expected no saves for rejected input, got %d", mem.saves)
	}
}

func TestInsertTrimsTrailingWhitespace(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())

	if err := store.Insert(context.Background(), "hello  \n"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	equalTexts(t, store, []string{"hello"})
	if store.Items()[0].NumLines != 1 {
		t.Errorf("expected 1 line, got %d", store.Items()[0].NumLines)
	}
}

func TestInsertTitleResolution(t *testing.T) {
	titles := &fixedTitles{title: "Example Page"}
	mem := &memPersistence{}
	store := NewItemStore(DefaultSettings(), mem, titles)
	ctx := context.Background()

	if err := store.Insert(ctx, "https://example.com/page"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if store.Items()[0].Title != "Example Page" {
		t.Errorf("expected resolved title, got %q", store.Items()[0].Title)
	}

	// Text with whitespace is not a bare URL
	if err := store.Insert(ctx, "see https://example.com"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if store.Items()[0].Title != "" {
		t.Errorf("expected no title for non-bare URL, got %q", store.Items()[0].Title)
	}

	if len(titles.calls) != 1 {
		t.Errorf("expected 1 title lookup, got %d", len(titles.calls))
	}
}

func TestInsertTitleDisabled(t *testing.T) {
	settings := DefaultSettings()
	settings.EnableTitles = false

	titles := &fixedTitles{title: "Example Page"}
	store := NewItemStore(settings, &memPersistence{}, titles)

	if err := store.Insert(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(titles.calls) != 0 {
		t.Errorf("expected no title lookups, got %d", len(titles.calls))
	}
}

func TestSelect(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())
	ctx := context.Background()
	store.Insert(ctx, "a")
	store.Insert(ctx, "b")

	text, err := store.Select(1)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if text != "a" {
		t.Errorf("expected %q, got %q", "a", text)
	}

	equalTexts(t, store, []string{"b", "a"})

	if _, err := store.Select(2); err != ErrIndexRange {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
	if _, err := store.Select(-1); err != ErrIndexRange {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		store.Insert(ctx, text)
	}

	if err := store.Delete(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	equalTexts(t, store, []string{"c", "a"})

	if err := store.Delete(5); err != ErrIndexRange {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	store, mem := newTestStore(DefaultSettings())
	ctx := context.Background()
	store.Insert(ctx, "a")
	store.Insert(ctx, "b")

	if err := store.DeleteAll(); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d items", store.Len())
	}

	var persisted []Item
	if err := json.Unmarshal(mem.data, &persisted); err != nil {
		t.Fatalf("unmarshal persisted data: %v", err)
	}
	if len(persisted) != 0 {
		t.Errorf("expected empty persisted list, got %d items", len(persisted))
	}
}

func TestJoin(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())
	ctx := context.Background()
	for _, text := range []string{"e", "d", "c", "b", "a"} {
		store.Insert(ctx, text)
	}
	// Store is now [a b c d e]

	merged, err := store.Join(ctx, 1, 3, false)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if merged != "b c d" {
		t.Errorf("expected %q, got %q", "b c d", merged)
	}

	equalTexts(t, store, []string{"b c d", "a", "e"})
}

func TestJoinReverse(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())
	ctx := context.Background()
	for _, text := range []string{"c", "b", "a"} {
		store.Insert(ctx, text)
	}

	merged, err := store.Join(ctx, 0, 3, true)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if merged != "c b a" {
		t.Errorf("expected %q, got %q", "c b a", merged)
	}
}

func TestJoinClampsCount(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())
	ctx := context.Background()
	store.Insert(ctx, "b")
	store.Insert(ctx, "a")

	merged, err := store.Join(ctx, 0, 9, false)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if merged != "a b" {
		t.Errorf("expected %q, got %q", "a b", merged)
	}
	equalTexts(t, store, []string{"a b"})
}

func TestJoinOversizedMergePersistsRemoval(t *testing.T) {
	settings := DefaultSettings()
	settings.HeavyPaste = 8
	store, mem := newTestStore(settings)
	ctx := context.Background()
	store.Insert(ctx, "bbbbb")
	store.Insert(ctx, "aaaaa")

	merged, err := store.Join(ctx, 0, 2, false)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if merged != "aaaaa bbbbb" {
		t.Errorf("expected merged text returned, got %q", merged)
	}

	// The merge exceeded heavy_paste, so nothing was stored, but the
	// removal of the source items is still persisted.
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d items", store.Len())
	}
	var persisted []Item
	if err := json.Unmarshal(mem.data, &persisted); err != nil {
		t.Fatalf("unmarshal persisted data: %v", err)
	}
	if len(persisted) != 0 {
		t.Errorf("expected empty persisted list, got %d items", len(persisted))
	}
}

func TestJoinOutOfRange(t *testing.T) {
	store, _ := newTestStore(DefaultSettings())
	store.Insert(context.Background(), "a")

	if _, err := store.Join(context.Background(), 3, 2, false); err != ErrIndexRange {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	mem := &memPersistence{}

	store := NewItemStore(settings, mem, nil)
	ctx := context.Background()
	store.Insert(ctx, "one\ntwo")
	store.Insert(ctx, "three")

	reloaded := NewItemStore(settings, mem, nil)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	equalTexts(t, reloaded, []string{"three", "one\ntwo"})
	if reloaded.Items()[1].NumLines != 2 {
		t.Errorf("expected 2 lines, got %d", reloaded.Items()[1].NumLines)
	}
}
