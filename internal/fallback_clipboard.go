package internal

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard is the in-process clipboard accessor, used when xclip
// is not installed.
type SystemClipboard struct{}

func (SystemClipboard) Get(ctx context.Context) (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

func (SystemClipboard) Set(ctx context.Context, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// NewClipboard prefers xclip and falls back to the in-process accessor.
func NewClipboard() ClipboardPort {
	if err := ProbeBinary(ClipboardBinary); err == nil {
		return XclipClipboard{}
	}
	return SystemClipboard{}
}
