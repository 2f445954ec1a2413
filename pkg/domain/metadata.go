package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Status はアセットのライフサイクル上の状態です。
type Status string

const (
	StatusStaging  Status = "staging"
	StatusUsed     Status = "used"
	StatusRejected Status = "rejected"
)

// AssetMetadata は生成されたスプライトごとのサイドカー JSON です。
type AssetMetadata struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Prompt      string     `json:"prompt"`
	FullPrompt  string     `json:"full_prompt"`
	GodPalette  string     `json:"god_palette"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	Name        string     `json:"name"`
	Size        int        `json:"size"`
	Frames      int        `json:"frames"`
	Status      Status     `json:"status"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`

	RejectionReason string `json:"rejection_reason,omitempty"`
}

// MarshalJSON は god_palette と subcategory が空のとき null として書き出します。
// 読み込み時の null は空文字になります。
func (m AssetMetadata) MarshalJSON() ([]byte, error) {
	type plain AssetMetadata
	return json.Marshal(struct {
		plain
		GodPalette  *string `json:"god_palette"`
		Subcategory *string `json:"subcategory"`
	}{
		plain:       plain(m),
		GodPalette:  nullable(m.GodPalette),
		Subcategory: nullable(m.Subcategory),
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Key はメタデータの category/subcategory/name からアセットキーを導出します。
func (m AssetMetadata) Key() string {
	return AssetKey(m.Category, m.Subcategory, m.Name)
}

// FramesOrDefault は frames が未設定のとき 1 を返します。
func (m AssetMetadata) FramesOrDefault() int {
	if m.Frames <= 0 {
		return 1
	}
	return m.Frames
}

// SizeOrDefault は size が未設定のとき fallback を返します。
func (m AssetMetadata) SizeOrDefault(fallback int) int {
	if m.Size <= 0 {
		return fallback
	}
	return m.Size
}

// LoadMetadata は指定されたパスからメタデータを読み込みます。
// ファイルが存在しない場合は os.ErrNotExist をラップしたエラーを返します。
func LoadMetadata(path string) (AssetMetadata, error) {
	var meta AssetMetadata
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, fmt.Errorf("メタデータの読み込みに失敗しました (%s): %w", path, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("メタデータのJSONパースに失敗しました (%s): %w", path, err)
	}
	return meta, nil
}

// SaveMetadata はメタデータをインデント付き JSON として書き出します。
func SaveMetadata(path string, meta AssetMetadata) error {
	return writeJSON(path, meta)
}

// EncodeMetadata はメタデータを保存時と同じインデント付き JSON に変換します。
func EncodeMetadata(meta AssetMetadata) ([]byte, error) {
	return encodeJSON(meta)
}

func encodeJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("JSONのエンコードに失敗しました: %w", err)
	}
	return append(data, '\n'), nil
}

func writeJSON(path string, v any) error {
	data, err := encodeJSON(v)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ファイルの書き込みに失敗しました (%s): %w", path, err)
	}
	return nil
}
