package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/style"
)

// ReferencePrefix は参照画像を添付したときにプロンプトの先頭へ付ける指示です。
const ReferencePrefix = "Using the above image as a style reference, generate in the EXACT same pixel art style: "

// SpritePromptBuilder は、スタイルガイドを考慮してスプライト生成用のプロンプトを構築します。
type SpritePromptBuilder struct {
	guide domain.StyleGuide
}

// NewSpritePromptBuilder は新しい SpritePromptBuilder を生成します。
func NewSpritePromptBuilder(guide domain.StyleGuide) *SpritePromptBuilder {
	return &SpritePromptBuilder{guide: guide}
}

// Build は Compose にビルダーのスタイルガイドを渡すだけの薄いラッパーです。
func (pb *SpritePromptBuilder) Build(basePrompt, category string, size, frames int, god string) string {
	return Compose(basePrompt, category, size, frames, god, pb.guide)
}

// Compose は画風、サイズ指定、世界観、パレット、ユーザーのプロンプトを固定の順序で結合します。
// ユーザーのプロンプトは最も強く効かせたいので最後に置きます。
// category は現状プロンプトには含めませんが、呼び出し側の契約として受け取ります。
func Compose(basePrompt, category string, size, frames int, god string, guide domain.StyleGuide) string {
	baseStyle := guide.BaseStyle
	if baseStyle == "" {
		baseStyle = style.DefaultBaseStyle
	}
	aesthetic := guide.Aesthetic
	if aesthetic == "" {
		aesthetic = style.DefaultAesthetic
	}

	parts := []string{baseStyle, LayoutClause(size, frames), aesthetic}

	if palette, ok := guide.Palette(god); ok {
		parts = append(parts, fmt.Sprintf("using %s color palette", palette.Description))
	}

	parts = append(parts, basePrompt)
	return strings.Join(parts, ", ")
}

// LayoutClause はフレーム数に応じたサイズ指定を返します。
// 複数フレームの場合は左から右へ並べたスプライトシートとして全体サイズと1フレームのサイズを明示します。
func LayoutClause(size, frames int) string {
	if frames > 1 {
		return fmt.Sprintf(
			"sprite sheet with %d frames arranged horizontally, total image size %dx%d pixels, each frame %dx%d pixels",
			frames, size*frames, size, size, size,
		)
	}
	return fmt.Sprintf("single sprite, %dx%d pixels", size, size)
}

// ReferencePrompt は参照画像付きリクエスト用のプロンプトを返します。
func ReferencePrompt(fullPrompt string) string {
	return ReferencePrefix + fullPrompt
}
