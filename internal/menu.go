package internal

import (
	"context"
	"fmt"
)

// Selector status codes. The selector encodes the requested action in its
// exit status: 10 deletes the chosen item, 11 through 18 join 2 through 9
// items, 19 asks to clear the whole history. Any other status accepts the
// chosen item.
const (
	statusAccept  = 0
	statusDelete  = 10
	statusJoinMin = 11
	statusJoinMax = 18
	statusClear   = 19
)

// Menu drives the interactive history menu: it shows the store through
// the selector, applies the chosen action and re-opens the menu until the
// user accepts an item or cancels.
type Menu struct {
	store    *ItemStore
	selector SelectorPort
	clip     ClipboardPort
	settings Settings
	prompt   string
	format   func(items []Item) []string
}

func NewMenu(store *ItemStore, selector SelectorPort, clip ClipboardPort, settings Settings, prompt string, format func([]Item) []string) *Menu {
	return &Menu{
		store:    store,
		selector: selector,
		clip:     clip,
		settings: settings,
		prompt:   prompt,
		format:   format,
	}
}

// Run loops instead of recursing so that any number of deletes cannot
// grow the stack. selected carries the cursor position between displays.
func (m *Menu) Run(ctx context.Context) error {
	selected := 0

	for {
		choice, err := m.selector.Select(ctx, m.prompt, m.format(m.store.Items()), selected)
		if err != nil {
			return fmt.Errorf("show menu: %w", err)
		}
		if choice.Cancelled {
			return nil
		}

		switch {
		case choice.Status == statusDelete:
			if err := m.store.Delete(choice.Index); err != nil {
				return err
			}
			selected = choice.Index

		case choice.Status >= statusJoinMin && choice.Status <= statusJoinMax:
			merged, err := m.store.Join(ctx, choice.Index, choice.Status-9, m.settings.ReverseJoin)
			if err != nil {
				return err
			}
			if err := m.clip.Set(ctx, merged); err != nil {
				return fmt.Errorf("copy joined text: %w", err)
			}
			selected = 0

		case choice.Status == statusClear:
			if err := m.confirmClear(ctx); err != nil {
				return err
			}
			selected = 0

		default:
			text, err := m.store.Select(choice.Index)
			if err != nil {
				return err
			}
			if err := m.clip.Set(ctx, text); err != nil {
				return fmt.Errorf("copy text: %w", err)
			}
			return nil
		}
	}
}

func (m *Menu) confirmClear(ctx context.Context) error {
	choice, err := m.selector.Select(ctx, "Delete all items?", []string{"No", "Yes"}, 0)
	if err != nil {
		return fmt.Errorf("show confirm prompt: %w", err)
	}
	if choice.Cancelled || choice.Status != statusAccept {
		return nil
	}
	if choice.Index == 1 {
		return m.store.DeleteAll()
	}
	return nil
}
