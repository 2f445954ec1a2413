package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBatchFile_Requests(t *testing.T) {
	b := BatchFile{Items: []BatchItem{
		{Name: "slime", Category: "enemy", Subcategory: "minor", Prompt: "green slime", God: "demeter", Frames: 4, Size: 32},
		{Prompt: "unnamed"},
	}}

	got := b.Requests(OutputDirect)
	want := []GenerateRequest{
		{Category: "enemy", Subcategory: "minor", Name: "slime", Prompt: "green slime", God: "demeter", Frames: 4, Size: 32, Output: OutputDirect},
		{Category: "player", Name: "sprite_2", Prompt: "unnamed", Frames: 1, Output: OutputDirect},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("変換結果が一致しません (-want +got):\n%s", diff)
	}
	if !got[0].Direct() {
		t.Error("direct 指定が反映されていません")
	}
	if got[0].Key() != "enemy.minor.slime" {
		t.Errorf("キーが一致しません: %s", got[0].Key())
	}
}

func TestIsValidCategory(t *testing.T) {
	if !IsValidCategory("terrain") {
		t.Error("terrain が受け付けられません")
	}
	if IsValidCategory("vehicle") {
		t.Error("未知のカテゴリが受け付けられました")
	}
}
