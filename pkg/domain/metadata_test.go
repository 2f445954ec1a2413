package domain

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestAssetMetadata_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")
	approved := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	meta := AssetMetadata{
		ID:          "1a2b3c4d",
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Prompt:      "standing hero",
		FullPrompt:  "style, single sprite, 64x64 pixels, standing hero",
		GodPalette:  "zeus",
		Category:    "player",
		Name:        "idle",
		Size:        64,
		Frames:      1,
		Status:      StatusUsed,
		ApprovedAt:  &approved,
		Subcategory: "",
	}

	if err := SaveMetadata(path, meta); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}
	got, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}
	if diff := cmp.Diff(meta, got); diff != "" {
		t.Errorf("保存前後でメタデータが一致しません (-want +got):\n%s", diff)
	}
}

func TestAssetMetadata_NullableFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	meta := AssetMetadata{ID: "1a2b3c4d", Category: "player", Name: "idle", Size: 64, Frames: 1, Status: StatusStaging}
	if err := SaveMetadata(path, meta); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("JSONのパースに失敗しました: %v", err)
	}
	for _, key := range []string{"god_palette", "subcategory"} {
		v, ok := raw[key]
		if !ok {
			t.Errorf("%s が書き出されていません", key)
		} else if v != nil {
			t.Errorf("%s が null ではありません: %v", key, v)
		}
	}
	if _, ok := raw["approved_at"]; ok {
		t.Error("未設定の approved_at が書き出されました")
	}

	t.Run("値があれば文字列として書き出されること", func(t *testing.T) {
		meta.GodPalette, meta.Subcategory = "zeus", "knight"
		data, err := EncodeMetadata(meta)
		if err != nil {
			t.Fatal(err)
		}
		var got AssetMetadata
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(meta, got); diff != "" {
			t.Errorf("メタデータが一致しません (-want +got):\n%s", diff)
		}
	})
}

func TestLoadMetadata_Missing(t *testing.T) {
	_, err := LoadMetadata(filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("os.ErrNotExist が返っていません: %v", err)
	}
}

func TestAssetMetadata_Defaults(t *testing.T) {
	var meta AssetMetadata
	if meta.FramesOrDefault() != 1 {
		t.Errorf("frames の既定値が 1 ではありません: %d", meta.FramesOrDefault())
	}
	if meta.SizeOrDefault(64) != 64 {
		t.Errorf("size の既定値が使われていません: %d", meta.SizeOrDefault(64))
	}

	meta = AssetMetadata{Category: "enemy", Subcategory: "boss", Name: "hydra", Frames: 4, Size: 256}
	if meta.Key() != "enemy.boss.hydra" {
		t.Errorf("キーが一致しません: %s", meta.Key())
	}
	if meta.FramesOrDefault() != 4 || meta.SizeOrDefault(64) != 256 {
		t.Error("設定済みの値が使われていません")
	}
}

func TestStyleGuide_Palette(t *testing.T) {
	g := StyleGuide{Palettes: map[string]Palette{
		"zeus": {Description: "gold"},
		"ares": {Description: "crimson"},
	}}

	if p, ok := g.Palette("zeus"); !ok || p.Description != "gold" {
		t.Errorf("zeus のパレットが取得できません: %+v, %v", p, ok)
	}
	if _, ok := g.Palette("hades"); ok {
		t.Error("未知の神でパレットが返りました")
	}
	if _, ok := g.Palette(""); ok {
		t.Error("空の名前でパレットが返りました")
	}
	if diff := cmp.Diff([]string{"ares", "zeus"}, g.GodNames()); diff != "" {
		t.Errorf("神の名前一覧が一致しません (-want +got):\n%s", diff)
	}
}
