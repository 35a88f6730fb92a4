package config

// Config represents the complete configuration structure
type Config struct {
	AniList AniListConfig `mapstructure:"anilist"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AniListConfig holds client connection settings
type AniListConfig struct {
	// Timeout is the HTTP timeout in seconds.
	Timeout int `mapstructure:"timeout"`
	// Decode selects the response decode mode: "buffered" or "streaming".
	Decode string `mapstructure:"decode"`
}

// SearchConfig contains default search behavior
type SearchConfig struct {
	AllowAdult    bool `mapstructure:"allow_adult"`
	IncludeNovels bool `mapstructure:"include_novels"`
	PerPage       int  `mapstructure:"per_page"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
