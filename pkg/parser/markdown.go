package parser

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/shouni/go-sprite-kit/pkg/domain"
)

const (
	fieldKeyName        = "name"
	fieldKeyCategory    = "category"
	fieldKeySubcategory = "subcategory"
	fieldKeyPrompt      = "prompt"
	fieldKeyGod         = "god"
	fieldKeyFrames      = "frames"
	fieldKeySize        = "size"
	fieldKeyReference   = "reference"
)

var (
	// spriteHeading は項目を開始する "## Sprite" 見出しです。"## Sprite: slime" のように名前を添えてもかまいません。
	spriteHeading = regexp.MustCompile(`(?i)^##\s+sprite\b(?:\s*:\s*(\S+))?`)

	// fieldLine は "- key: value" 形式の行です。値が空の行も受け付けます。
	fieldLine = regexp.MustCompile(`^-\s*([a-zA-Z_]+)\s*:\s*(.*)$`)
)

// MarkdownParser は Markdown 形式のバッチファイルを解析し、構造化データに変換する構造体です。
//
//	# Enemies
//	## Sprite: slime
//	- category: enemy
//	- prompt: green slime bouncing
//	- frames: 4
type MarkdownParser struct{}

// NewMarkdownParser は MarkdownParser を初期化します。
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// Parse は Markdown テキストを解析して domain.BatchFile に変換します。
func (p *MarkdownParser) Parse(input string) (*domain.BatchFile, error) {
	batch := &domain.BatchFile{}
	var current *domain.BatchItem

	addPrevious := func() {
		if current != nil && hasContent(current) {
			batch.Items = append(batch.Items, *current)
		}
	}

	for i, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if h := spriteHeading.FindStringSubmatch(trimmed); h != nil {
			addPrevious()
			current = &domain.BatchItem{Name: h[1]}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			// 他の見出しで項目は閉じます。
			addPrevious()
			current = nil
			continue
		}

		if current == nil {
			continue
		}
		m := fieldLine.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		key, val := strings.ToLower(m[1]), strings.TrimSpace(m[2])
		if val == "" {
			continue
		}
		switch key {
		case fieldKeyName:
			current.Name = val
		case fieldKeyCategory:
			current.Category = strings.ToLower(val)
		case fieldKeySubcategory:
			current.Subcategory = strings.ToLower(val)
		case fieldKeyPrompt:
			current.Prompt = val
		case fieldKeyGod:
			current.God = strings.ToLower(val)
		case fieldKeyFrames, fieldKeySize:
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%d行目: %s は整数で指定してください: %q", i+1, key, val)
			}
			if key == fieldKeyFrames {
				current.Frames = n
			} else {
				current.Size = n
			}
		case fieldKeyReference:
			current.Reference = val
		default:
			slog.Debug("Markdown内に未知のフィールドキーが見つかりました", "key", key)
		}
	}
	addPrevious()

	if len(batch.Items) == 0 {
		return nil, fmt.Errorf("有効なスプライト定義が見つかりませんでした")
	}
	return batch, nil
}

// hasContent は項目に有効な情報が含まれているか判定します。
func hasContent(item *domain.BatchItem) bool {
	return item.Name != "" || item.Prompt != ""
}
