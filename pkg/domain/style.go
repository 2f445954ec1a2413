package domain

import (
	"maps"
	"slices"
)

// Palette は神ごとの4色と、プロンプトに注入する説明文です。
type Palette struct {
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	Accent      string `json:"accent"`
	Dark        string `json:"dark"`
	Description string `json:"description"`
}

// StyleGuide はプロセス全体で共有される画風設定です。
type StyleGuide struct {
	BaseStyle string             `json:"base_style"`
	Aesthetic string             `json:"aesthetic,omitempty"`
	Palettes  map[string]Palette `json:"palettes"`
}

// Palette は神の名前からパレットを引きます。未知の名前なら ok は false です。
func (g StyleGuide) Palette(god string) (Palette, bool) {
	if god == "" {
		return Palette{}, false
	}
	p, ok := g.Palettes[god]
	return p, ok
}

// GodNames は登録済みの神の名前をソートして返します。
func (g StyleGuide) GodNames() []string {
	return slices.Sorted(maps.Keys(g.Palettes))
}
