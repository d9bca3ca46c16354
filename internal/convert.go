package internal

import (
	"context"
	"fmt"
	"regexp"
)

// Converter names, used as keys in the settings converters map.
const (
	ConverterYoutuBe      = "youtu_be"
	ConverterYoutubeMusic = "youtube_music"
)

// A Converter rewrites copied text into something else. Convert returns
// the empty string when the text does not match.
type Converter struct {
	Name    string
	Convert func(text string) string
}

var (
	youtuBePattern      = regexp.MustCompile(`https://youtu\.be/([\w-]+)(\?t=(\d+))?`)
	youtubeMusicPattern = regexp.MustCompile(`https://music\.youtube\.com/(watch\?v=([\w-]+)|playlist\?list=([\w-]+))`)
)

// BuiltinConverters returns all converters in priority order. The first
// matching converter wins.
func BuiltinConverters() []Converter {
	return []Converter{
		{Name: ConverterYoutuBe, Convert: convertYoutuBe},
		{Name: ConverterYoutubeMusic, Convert: convertYoutubeMusic},
	}
}

// youtu.be -> youtube
func convertYoutuBe(text string) string {
	m := youtuBePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	if m[3] != "" {
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ss", m[1], m[3])
	}
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", m[1])
}

// music.youtube -> youtube
func convertYoutubeMusic(text string) string {
	m := youtubeMusicPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	if m[2] != "" {
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s", m[2])
	}
	if m[3] != "" {
		return fmt.Sprintf("https://www.youtube.com/playlist?list=%s", m[3])
	}
	return ""
}

// Pipeline runs text through the enabled converters in priority order.
type Pipeline struct {
	converters []Converter
	enabled    map[string]bool
}

func NewPipeline(enabled map[string]bool) *Pipeline {
	return &Pipeline{
		converters: BuiltinConverters(),
		enabled:    enabled,
	}
}

// Convert returns the rewritten text and true when a converter fires.
// Converters only apply to whitespace-free text.
func (p *Pipeline) Convert(text string) (string, bool) {
	if containsSpace(text) {
		return "", false
	}

	for _, c := range p.converters {
		if !p.enabled[c.Name] {
			continue
		}
		if out := c.Convert(text); out != "" {
			return out, true
		}
	}
	return "", false
}

// InsertClip stores copied text, converting it first when converters are
// enabled. Converted text is copied back to the clipboard; depending on
// keep_original_on_convert the original text is stored alongside it.
func InsertClip(ctx context.Context, store *ItemStore, pipe *Pipeline, clip ClipboardPort, settings Settings, text string) error {
	if settings.EnableConverters && pipe != nil {
		if converted, ok := pipe.Convert(text); ok {
			if settings.KeepOriginalOnConvert {
				if err := store.Insert(ctx, "Original: "+text); err != nil {
					return err
				}
			}
			if err := store.Insert(ctx, converted); err != nil {
				return err
			}
			if clip != nil {
				if err := clip.Set(ctx, converted); err != nil {
					return fmt.Errorf("copy converted text: %w", err)
				}
			}
			return nil
		}
	}

	return store.Insert(ctx, text)
}
