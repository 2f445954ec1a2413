package style

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shouni/go-sprite-kit/pkg/domain"
)

// デフォルトの画風指示。まとまりを保つための最小限のアンカーだけを含めます。
const (
	DefaultBaseStyle = "Retro video game pixel art sprite (NOT digital illustration), black 1px outlines, " +
		"light source from upper-left (highlights on upper-left edges, shadows on lower-right), " +
		"medium saturation colors (vibrant but earthy, not neon), crisp pixelated edges, " +
		"no anti-aliasing, no smooth gradients"
	DefaultAesthetic = "Mythic Greek world with weathered, lived-in feel, mix of human, divine, and monstrous"
)

// DefaultPalettes は組み込みの神パレットを返します。
func DefaultPalettes() map[string]domain.Palette {
	return map[string]domain.Palette{
		"zeus": {
			Primary:     "#FFD700", // gold
			Secondary:   "#00BFFF", // electric blue
			Accent:      "#FFFFFF",
			Dark:        "#1a1a2e",
			Description: "gold, electric blue, white, dark storm colors",
		},
		"poseidon": {
			Primary:     "#1a3a5c",
			Secondary:   "#000000",
			Accent:      "#FFFFFF", // foam
			Dark:        "#0a1520",
			Description: "dark blue, black, white foam colors",
		},
		"ares": {
			Primary:     "#8B4513", // bronze
			Secondary:   "#DC143C", // crimson
			Accent:      "#708090", // steel
			Dark:        "#2a1a0a",
			Description: "brown, crimson, steel gray colors",
		},
		"demeter": {
			Primary:     "#90EE90",
			Secondary:   "#87CEEB", // frost
			Accent:      "#F0E68C",
			Dark:        "#1a2a1a",
			Description: "gentle green, frost blue, gentle yellow colors",
		},
	}
}

// DefaultGuide は組み込みの定数から組み立てたスタイルガイドを返します。
func DefaultGuide() domain.StyleGuide {
	return domain.StyleGuide{
		BaseStyle: DefaultBaseStyle,
		Aesthetic: DefaultAesthetic,
		Palettes:  DefaultPalettes(),
	}
}

// Registry は style_guide.json の読み書きを担います。
type Registry struct {
	path string
}

// NewRegistry は指定されたパスを扱う Registry を生成します。
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Path は読み書きするファイルのパスを返します。
func (r *Registry) Path() string {
	return r.path
}

// Exists はスタイルガイドのファイルが存在するかを返します。
func (r *Registry) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Load はスタイルガイドを読み込みます。ファイルが無ければ組み込みの既定値を返し、エラーにはしません。
// palettes を持たない文書には既定のパレットを補います。
func (r *Registry) Load() (domain.StyleGuide, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultGuide(), nil
	}
	if err != nil {
		return domain.StyleGuide{}, fmt.Errorf("スタイルガイドの読み込みに失敗しました (%s): %w", r.path, err)
	}

	var guide domain.StyleGuide
	if err := json.Unmarshal(data, &guide); err != nil {
		return domain.StyleGuide{}, fmt.Errorf("スタイルガイドのJSONパースに失敗しました (%s): %w", r.path, err)
	}
	if guide.Palettes == nil {
		guide.Palettes = DefaultPalettes()
	}
	return guide, nil
}

// Save はスタイルガイド全体を書き出します。
func (r *Registry) Save(guide domain.StyleGuide) error {
	data, err := json.MarshalIndent(guide, "", "  ")
	if err != nil {
		return fmt.Errorf("スタイルガイドのエンコードに失敗しました: %w", err)
	}
	if err := os.WriteFile(r.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("スタイルガイドの書き込みに失敗しました (%s): %w", r.path, err)
	}
	return nil
}
