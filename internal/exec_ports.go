package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// External binaries the adapters shell out to.
const (
	NotifierBinary  = "copyevent"
	ClipboardBinary = "xclip"
	SelectorBinary  = "rofi"
)

const clipboardTimeout = 3 * time.Second

// ProbeBinary checks that an external binary is installed.
func ProbeBinary(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH", name)
	}
	return nil
}

// CopyeventNotifier blocks on copyevent until the clipboard selection
// changes. The call has no timeout; it returns when copyevent does.
type CopyeventNotifier struct{}

func (CopyeventNotifier) Wait(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, NotifierBinary, "-s", "clipboard")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("copyevent: %w", err)
	}
	return nil
}

// XclipClipboard reads and writes the clipboard selection through xclip
// with a short timeout.
type XclipClipboard struct{}

func (XclipClipboard) Get(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, clipboardTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, ClipboardBinary, "-o", "-sel", "clip").Output()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return string(out), nil
}

func (XclipClipboard) Set(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, clipboardTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, ClipboardBinary, "-sel", "clip", "-f")
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// RofiSelector shows the menu through rofi in dmenu mode. The chosen row
// index comes back on stdout and the action code in the exit status
// (rofi maps Alt+1..Alt+9 and Alt+0 custom keybindings to 10..19).
type RofiSelector struct{}

func (RofiSelector) Select(ctx context.Context, prompt string, options []string, selectedRow int) (Choice, error) {
	args := []string{
		"-dmenu", "-markup-rows", "-i",
		"-p", prompt,
		"-format", "i",
		"-selected-row", strconv.Itoa(selectedRow),
		"-me-select-entry", "",
		"-me-accept-entry", "MousePrimary",
		"-theme-str", "window {width: 66%;}",
	}

	cmd := exec.CommandContext(ctx, SelectorBinary, args...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))
	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	status := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status = exitErr.ExitCode()
	} else if err != nil {
		return Choice{}, fmt.Errorf("rofi: %w", err)
	}

	answer := strings.TrimSpace(out.String())
	if answer == "" {
		return Choice{Cancelled: true}, nil
	}

	index, err := strconv.Atoi(answer)
	if err != nil {
		return Choice{}, fmt.Errorf("rofi answer %q: %w", answer, err)
	}
	return Choice{Status: status, Index: index}, nil
}
