package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	kitconfig "github.com/shouni/go-sprite-kit/pkg/config"
	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultProjectRoot = "."
	DefaultEnvFile     = ".env"
	DefaultImageModel  = kitconfig.DefaultImageModel
)

// apiKeyNames は API キーを探す環境変数名なのだ。先にあるほうが優先なのだ。
var apiKeyNames = []string{"GEMINI_API_KEY", "SPRITEGEN_API_KEY"}

// Config はアプリケーション全体の環境設定を保持する構造体なのだ。
type Config struct {
	ProjectRoot      string
	EnvFile          string
	GeminiAPIKey     string
	GeminiImageModel string
	RateInterval     time.Duration

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
// API キーはここでは探さないのだ。必要なコマンドだけが ResolveAPIKey を呼ぶのだ。
func LoadConfig() *Config {
	cfg := &Config{
		ProjectRoot:      envutil.GetEnv("SPRITEGEN_PROJECT_ROOT", DefaultProjectRoot),
		EnvFile:          envutil.GetEnv("SPRITEGEN_ENV_FILE", DefaultEnvFile),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		RateInterval:     kitconfig.DefaultRateInterval,
	}

	if raw := envutil.GetEnv("SPRITEGEN_RATE_INTERVAL", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			slog.Warn("SPRITEGEN_RATE_INTERVAL を解釈できないので無視するのだ", "value", raw, "error", err)
		} else {
			cfg.RateInterval = d
		}
	}
	return cfg
}

// ResolveAPIKey は環境変数、次に .env ファイルの順で API キーを探して cfg に設定するのだ。
// どこにも無ければ domain.ErrConfigurationMissing を返すのだ。
func (c *Config) ResolveAPIKey() error {
	for _, name := range apiKeyNames {
		if v := os.Getenv(name); v != "" {
			c.GeminiAPIKey = v
			return nil
		}
	}

	if c.EnvFile != "" {
		values, err := godotenv.Read(c.EnvFile)
		switch {
		case err == nil:
			for _, name := range apiKeyNames {
				if v := values[name]; v != "" {
					c.GeminiAPIKey = v
					return nil
				}
			}
		case errors.Is(err, os.ErrNotExist):
			slog.Debug(".env ファイルが見つからないのだ", "path", c.EnvFile)
		default:
			return fmt.Errorf(".env ファイルの読み込みに失敗したのだ (%s): %w", c.EnvFile, err)
		}
	}

	return fmt.Errorf("%w: 環境変数 %s または %s (もしくは %s 内) に API キーを設定してほしいのだ",
		domain.ErrConfigurationMissing, apiKeyNames[0], apiKeyNames[1], c.EnvFile)
}

// KitConfig は pkg 側の Runner に渡す設定へ変換するのだ。
func (c *Config) KitConfig() kitconfig.Config {
	kit := kitconfig.DefaultConfig()
	kit.GeminiAPIKey = c.GeminiAPIKey
	if c.GeminiImageModel != "" {
		kit.ImageModel = c.GeminiImageModel
	}
	kit.RateInterval = c.RateInterval
	return kit
}

// GenerateOptions は generate コマンドのフラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	Category    string // --category
	Subcategory string // --subcategory
	Name        string // --name
	Prompt      string // --prompt
	God         string // --god
	Frames      int    // --frames
	Size        int    // --size (0 ならサイズ表の値)
	Output      string // --output: staging|direct
	AutoApply   bool   // --auto-apply: direct と同じ扱いなのだ
	Reference   string // --reference
}

// Request は GenerateOptions を生成要求に変換するのだ。
func (o GenerateOptions) Request() domain.GenerateRequest {
	output := domain.OutputMode(o.Output)
	if o.AutoApply {
		output = domain.OutputDirect
	}
	if output == "" {
		output = domain.OutputStaging
	}
	frames := o.Frames
	if frames <= 0 {
		frames = kitconfig.DefaultFrames
	}
	return domain.GenerateRequest{
		Category:    o.Category,
		Subcategory: o.Subcategory,
		Name:        o.Name,
		Prompt:      o.Prompt,
		God:         o.God,
		Frames:      frames,
		Size:        o.Size,
		Output:      output,
		Reference:   o.Reference,
	}
}
