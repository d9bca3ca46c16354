package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

var ErrIndexRange = errors.New("item index out of range")

// ItemStore is the ordered, deduplicated, capacity-bounded clipboard
// history. Items are kept most-recently-touched first and the whole list
// is persisted on every mutation.
type ItemStore struct {
	settings Settings
	persist  Persistence
	titles   TitlePort
	now      func() time.Time
	items    []Item
}

func NewItemStore(settings Settings, persist Persistence, titles TitlePort) *ItemStore {
	return &ItemStore{
		settings: settings,
		persist:  persist,
		titles:   titles,
		now:      time.Now,
	}
}

// Load reads the backing storage. Empty or missing data yields an empty
// store; malformed data is a fatal error, not repaired.
func (s *ItemStore) Load() error {
	data, err := s.persist.Load()
	if err != nil {
		return fmt.Errorf("read items: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.items = nil
		return nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parse items: %w", err)
	}
	s.items = items
	return nil
}

func (s *ItemStore) Items() []Item {
	return s.items
}

func (s *ItemStore) Len() int {
	return len(s.items)
}

// Insert adds text to the front of the store. Empty text, file:// paths
// and text longer than heavy_paste are silently ignored. If the text is
// already stored, the existing item keeps its date and title and only
// moves to the front.
func (s *ItemStore) Insert(ctx context.Context, text string) error {
	text = strings.TrimRightFunc(text, unicode.IsSpace)

	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "file://") {
		return nil
	}
	if len(text) > s.settings.HeavyPaste {
		return nil
	}

	item, found := s.take(text)
	if !found {
		title := ""
		if s.settings.EnableTitles && s.titles != nil && isBareURL(text) {
			title = s.titles.Resolve(ctx, text)
		}
		item = NewItem(text, title, s.now())
	}

	s.items = append([]Item{item}, s.items...)
	if len(s.items) > s.settings.MaxItems {
		s.items = s.items[:s.settings.MaxItems]
	}
	return s.save()
}

// take removes and returns the item with exactly matching text.
func (s *ItemStore) take(text string) (Item, bool) {
	for i, item := range s.items {
		if item.Text == text {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return item, true
		}
	}
	return Item{}, false
}

// Select returns the text at index for the caller to copy out.
func (s *ItemStore) Select(index int) (string, error) {
	if index < 0 || index >= len(s.items) {
		return "", ErrIndexRange
	}
	return s.items[index].Text, nil
}

func (s *ItemStore) Delete(index int) error {
	if index < 0 || index >= len(s.items) {
		return ErrIndexRange
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.save()
}

func (s *ItemStore) DeleteAll() error {
	s.items = nil
	return s.save()
}

// Join merges count consecutive items starting at index into one
// space-joined item, which goes back through Insert and is returned for
// the caller to copy out. The count is clamped to the tail.
func (s *ItemStore) Join(ctx context.Context, index, count int, reverse bool) (string, error) {
	if index < 0 || index >= len(s.items) {
		return "", ErrIndexRange
	}

	end := index + count
	if end > len(s.items) {
		end = len(s.items)
	}

	parts := make([]string, 0, end-index)
	for _, item := range s.items[index:end] {
		parts = append(parts, strings.TrimSpace(item.Text))
	}
	if reverse {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}

	merged := strings.Join(parts, " ")
	s.items = append(s.items[:index], s.items[end:]...)

	if err := s.Insert(ctx, merged); err != nil {
		return "", err
	}
	// Insert skips persisting when it rejects the merged text, but the
	// source items are gone either way.
	if err := s.save(); err != nil {
		return "", err
	}
	return merged, nil
}

func (s *ItemStore) save() error {
	items := s.items
	if items == nil {
		items = []Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	if err := s.persist.Save(data); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	return nil
}
