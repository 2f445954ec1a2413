package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultImageModel   = "gemini-2.0-flash-exp"
	DefaultRateInterval = 0 * time.Second
	DefaultSpriteSize   = 64
	DefaultFrames       = 1
)

// SizeTable はカテゴリ（または "category.subcategory"）ごとの既定スプライトサイズです。
type SizeTable map[string]int

// DefaultSizes は組み込みのサイズ表を返します。呼び出しごとに新しいマップを返すので、
// テスト等で自由に書き換えて構いません。
func DefaultSizes() SizeTable {
	return SizeTable{
		"player":             64,
		"enemy.minor":        64,
		"enemy.major":        128,
		"enemy.boss":         256,
		"weapon":             64,
		"effect":             64,
		"terrain.platform":   64,
		"terrain.wall":       64,
		"terrain.background": 512,
		"terrain.tileset":    256,
		"ui.icon":            32,
		"ui.bar":             128,
		"ui":                 64,
	}
}

// SizeFor はサブカテゴリ付きのキー、カテゴリのみのキー、全体の既定値の順にサイズを解決します。
func (t SizeTable) SizeFor(category, subcategory string) int {
	if subcategory != "" {
		if size, ok := t[category+"."+subcategory]; ok {
			return size
		}
	}
	if size, ok := t[category]; ok {
		return size
	}
	return DefaultSpriteSize
}

// Config は go-sprite-kit の各 Runner を動作させるための基本設定です。
type Config struct {
	// --- AI Model Settings ---
	ImageModel string

	// --- Google AI (Gemini API) Settings ---
	GeminiAPIKey string

	// --- Generation Settings ---
	Sizes        SizeTable
	RateInterval time.Duration // バッチ生成時のリクエスト間隔。0 なら待機しない
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		ImageModel:   DefaultImageModel,
		Sizes:        DefaultSizes(),
		RateInterval: DefaultRateInterval,
	}
}
