package domain

import (
	"maps"
	"slices"
	"strings"
)

// ManifestVersion は現在のマニフェスト文書のバージョンです。
const ManifestVersion = 1

// ManifestEntry はゲームが参照する1アセット分の情報です。
type ManifestEntry struct {
	Path   string `json:"path"` // プロジェクトルートからの相対パス
	Frames int    `json:"frames"`
	Size   int    `json:"size"`
}

// Manifest はアセットキーからファイル位置と描画パラメータへの対応表です。
// 常に文書全体として読み書きされます。
type Manifest struct {
	Version int                      `json:"version"`
	Assets  map[string]ManifestEntry `json:"assets"`
}

// NewManifest は空のマニフェストを返します。
func NewManifest() Manifest {
	return Manifest{
		Version: ManifestVersion,
		Assets:  make(map[string]ManifestEntry),
	}
}

// AssetKey はアセットキーを導出します。
// サブカテゴリがあれば "category.subcategory.name"、なければ "category.name" です。
func AssetKey(category, subcategory, name string) string {
	if subcategory != "" {
		return category + "." + subcategory + "." + name
	}
	return category + "." + name
}

// Upsert はキーに対応するエントリを追加または上書きします。
func (m *Manifest) Upsert(key string, entry ManifestEntry) {
	if m.Assets == nil {
		m.Assets = make(map[string]ManifestEntry)
	}
	m.Assets[key] = entry
}

// Lookup はキーに対応するエントリを返します。
func (m Manifest) Lookup(key string) (ManifestEntry, bool) {
	entry, ok := m.Assets[key]
	return entry, ok
}

// Keys はソート済みのキー一覧を返します。category が指定された場合はそのカテゴリ配下のみです。
func (m Manifest) Keys(category string) []string {
	keys := slices.Sorted(maps.Keys(m.Assets))
	if category == "" {
		return keys
	}
	prefix := category + "."
	filtered := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			filtered = append(filtered, k)
		}
	}
	return filtered
}
