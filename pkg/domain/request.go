package domain

import (
	"fmt"
	"slices"
)

// OutputMode は生成結果の保存先です。
type OutputMode string

const (
	OutputStaging OutputMode = "staging"
	OutputDirect  OutputMode = "direct"
)

// Categories は generate で受け付けるカテゴリです。
var Categories = []string{"player", "enemy", "terrain", "weapon", "effect", "ui"}

// IsValidCategory はカテゴリが受け付け可能かを返します。
func IsValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}

// GenerateRequest は1回のスプライト生成要求です。
// バッチの各項目からも1つずつ組み立てられ、値渡しで生成処理に渡されます。
type GenerateRequest struct {
	Category    string
	Subcategory string
	Name        string
	Prompt      string
	God         string
	Frames      int
	Size        int // 0 ならカテゴリの既定サイズ
	Output      OutputMode
	Reference   string // スタイル参照画像のパス（任意）
}

// Direct は used ツリーへ直接書き出す要求かどうかを返します。
func (r GenerateRequest) Direct() bool {
	return r.Output == OutputDirect
}

// Key は要求から導出されるアセットキーです。
func (r GenerateRequest) Key() string {
	return AssetKey(r.Category, r.Subcategory, r.Name)
}

// BatchItem はバッチファイル内の1項目です。
type BatchItem struct {
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Subcategory string `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Prompt      string `json:"prompt" yaml:"prompt"`
	God         string `json:"god,omitempty" yaml:"god,omitempty"`
	Frames      int    `json:"frames,omitempty" yaml:"frames,omitempty"`
	Size        int    `json:"size,omitempty" yaml:"size,omitempty"`
	Reference   string `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// BatchFile はバッチ生成の入力文書です。
type BatchFile struct {
	Items []BatchItem `json:"items" yaml:"items"`
}

// Requests は各項目を GenerateRequest に変換します。
// 未指定の項目は category=player、name=sprite_<n>、frames=1 で補います。
func (b BatchFile) Requests(output OutputMode) []GenerateRequest {
	reqs := make([]GenerateRequest, 0, len(b.Items))
	for i, item := range b.Items {
		req := GenerateRequest{
			Category:    item.Category,
			Subcategory: item.Subcategory,
			Name:        item.Name,
			Prompt:      item.Prompt,
			God:         item.God,
			Frames:      item.Frames,
			Size:        item.Size,
			Output:      output,
			Reference:   item.Reference,
		}
		if req.Category == "" {
			req.Category = "player"
		}
		if req.Name == "" {
			req.Name = fmt.Sprintf("sprite_%d", i+1)
		}
		if req.Frames <= 0 {
			req.Frames = 1
		}
		reqs = append(reqs, req)
	}
	return reqs
}
