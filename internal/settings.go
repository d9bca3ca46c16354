package internal

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Settings controls how items are stored and how the menu behaves.
// Every key in the settings file is optional.
type Settings struct {
	// How many items to keep in the store
	MaxItems int

	// Don't store text whose length exceeds this
	HeavyPaste int

	// Fetch URL titles by parsing the HTML
	EnableTitles bool

	// Run copied text through the converters
	EnableConverters bool

	// Join items in reverse order
	ReverseJoin bool

	// Keep an "Original: ..." entry next to converted text
	KeepOriginalOnConvert bool

	// Per-converter toggles, keyed by converter name
	Converters map[string]bool
}

func DefaultSettings() Settings {
	return Settings{
		MaxItems:              2000,
		HeavyPaste:            5000,
		EnableTitles:          true,
		EnableConverters:      true,
		ReverseJoin:           false,
		KeepOriginalOnConvert: true,
		Converters: map[string]bool{
			ConverterYoutuBe:      true,
			ConverterYoutubeMusic: true,
		},
	}
}

// LoadSettings reads the JSON settings file at path. A missing or empty
// file yields the defaults; malformed JSON is a fatal error.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("max_items", 2000)
	v.SetDefault("heavy_paste", 5000)
	v.SetDefault("enable_titles", true)
	v.SetDefault("reverse_join", false)
	v.SetDefault("keep_original_on_convert", true)
	v.SetDefault("converters.youtu_be", true)
	v.SetDefault("converters.youtube_music", true)

	if len(bytes.TrimSpace(data)) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return Settings{}, fmt.Errorf("parse settings: %w", err)
		}
	}

	// "enable_converts" is the legacy spelling of "enable_converters"
	enableConverters := true
	switch {
	case v.InConfig("enable_converters"):
		enableConverters = v.GetBool("enable_converters")
	case v.InConfig("enable_converts"):
		enableConverters = v.GetBool("enable_converts")
	}

	return Settings{
		MaxItems:              v.GetInt("max_items"),
		HeavyPaste:            v.GetInt("heavy_paste"),
		EnableTitles:          v.GetBool("enable_titles"),
		EnableConverters:      enableConverters,
		ReverseJoin:           v.GetBool("reverse_join"),
		KeepOriginalOnConvert: v.GetBool("keep_original_on_convert"),
		Converters: map[string]bool{
			ConverterYoutuBe:      v.GetBool("converters.youtu_be"),
			ConverterYoutubeMusic: v.GetBool("converters.youtube_music"),
		},
	}, nil
}
