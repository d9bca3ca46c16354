package internal

import "context"

// Choice is the outcome of one selector invocation. Status carries the
// selector's exit code, which encodes the requested action (see Menu).
type Choice struct {
	Status    int
	Index     int
	Cancelled bool
}

// NotifierPort blocks until the system clipboard changes.
type NotifierPort interface {
	Wait(ctx context.Context) error
}

// ClipboardPort reads and writes the system clipboard.
type ClipboardPort interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, text string) error
}

// SelectorPort shows an interactive list and returns the user's choice.
type SelectorPort interface {
	Select(ctx context.Context, prompt string, options []string, selectedRow int) (Choice, error)
}

// TitlePort resolves a URL to a page title. It never fails: any problem
// resolves to an empty title.
type TitlePort interface {
	Resolve(ctx context.Context, url string) string
}
