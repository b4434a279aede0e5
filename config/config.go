package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string `default:"8080"`
	Debug     bool
	ProjectID string `envconfig:"PROJECT_ID" default:"music-legends-dev"`

	YouTubeAPIKey string `envconfig:"YOUTUBE_API_KEY"`
	LastFMAPIKey  string `envconfig:"LASTFM_API_KEY"`
	SpotifyID     string `envconfig:"SPOTIFY_ID"`
	SpotifySecret string `envconfig:"SPOTIFY_SECRET"`
	// LookupRate is the per-backend request budget in requests per second.
	LookupRate float64 `envconfig:"LOOKUP_RATE" default:"5"`

	ChartURL string        `envconfig:"CHART_URL" default:"https://www.billboard.com/charts/hot-100/"`
	PackTTL  time.Duration `envconfig:"PACK_TTL" default:"168h"`
}

// Load reads MUSICLEGENDS_* environment variables.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("musiclegends", &cfg)
	return cfg, err
}

func ProvideConfig() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err.Error())
	}
	return cfg
}

var Options = ProvideConfig
