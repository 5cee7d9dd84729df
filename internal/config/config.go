package config

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"streampick/internal/dirs"
)

// Settings is the engine configuration resolved from config file,
// environment, and flags. Codec blocklists live here rather than as
// constants so policy changes don't require redeploying the engine.
type Settings struct {
	ExtractorBinary string
	ProxyURL        string

	VideoCodecBlocklist []string
	AudioCodecBlocklist []string

	// SubtitleLanguages is the persisted comma-separated regex allow-list
	// for subtitle language codes.
	SubtitleLanguages string

	ProbeTimeout     time.Duration
	ProbeConcurrency int

	// MergeMultiAudio allows selecting more than one audio track for
	// merging into the output.
	MergeMultiAudio bool
}

// Init wires Viper with config paths, env, defaults, and flag bindings.
// It is non-fatal: any errors are returned for optional handling by caller.
func Init(root *cobra.Command) error {
	// Setup config search path
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		_ = dirs.Ensure(cfgDir)
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: STREAMPICK_*
	viper.SetEnvPrefix("STREAMPICK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Bind root persistent flags to Viper keys
	_ = viper.BindPFlag("extractor_binary", root.PersistentFlags().Lookup("extractor-binary"))
	_ = viper.BindPFlag("proxy_url", root.PersistentFlags().Lookup("proxy"))
	_ = viper.BindPFlag("subtitle_languages", root.PersistentFlags().Lookup("subtitle-languages"))
	_ = viper.BindPFlag("merge_multi_audio", root.PersistentFlags().Lookup("multi-audio"))

	setDefaults()

	// Read config file if present (ignore not found)
	_ = viper.ReadInConfig()

	return nil
}

func setDefaults() {
	viper.SetDefault("probe_timeout", "5s")
	viper.SetDefault("probe_concurrency", 8)
	viper.SetDefault("subtitle_languages", "")
	viper.SetDefault("merge_multi_audio", false)
	viper.SetDefault("video_codec_blocklist", []string{})
	viper.SetDefault("audio_codec_blocklist", []string{})
}

// Load materializes Settings from the current Viper state.
func Load() Settings {
	return Settings{
		ExtractorBinary:     viper.GetString("extractor_binary"),
		ProxyURL:            viper.GetString("proxy_url"),
		VideoCodecBlocklist: viper.GetStringSlice("video_codec_blocklist"),
		AudioCodecBlocklist: viper.GetStringSlice("audio_codec_blocklist"),
		SubtitleLanguages:   viper.GetString("subtitle_languages"),
		ProbeTimeout:        viper.GetDuration("probe_timeout"),
		ProbeConcurrency:    viper.GetInt("probe_concurrency"),
		MergeMultiAudio:     viper.GetBool("merge_multi_audio"),
	}
}
