package parser

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shouni/go-sprite-kit/examples"
	"github.com/shouni/go-sprite-kit/pkg/domain"
)

func writeBatch(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("バッチファイルの作成に失敗しました: %v", err)
	}
	return path
}

func TestBatchParser_ParseFromPath(t *testing.T) {
	ctx := context.Background()
	p := NewBatchParser(nil)

	t.Run("JSON形式を解析できること", func(t *testing.T) {
		path := writeBatch(t, "batch.json", `{"items":[{"name":"slime","category":"enemy","subcategory":"minor","prompt":"green slime","frames":4,"reference":"refs/slime.png"}]}`)

		got, err := p.ParseFromPath(ctx, path)
		if err != nil {
			t.Fatalf("解析に失敗しました: %v", err)
		}
		want := &domain.BatchFile{Items: []domain.BatchItem{{
			Name: "slime", Category: "enemy", Subcategory: "minor", Prompt: "green slime", Frames: 4,
			Reference: filepath.Join(filepath.Dir(path), "refs", "slime.png"),
		}}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("解析結果が一致しません (-want +got):\n%s", diff)
		}
	})

	t.Run("YAML形式を解析できること", func(t *testing.T) {
		path := writeBatch(t, "batch.yaml", `
items:
  - name: hydra
    category: enemy
    subcategory: boss
    prompt: three-headed hydra
    god: poseidon
    size: 256
  - prompt: unnamed
`)
		got, err := p.ParseFromPath(ctx, path)
		if err != nil {
			t.Fatalf("解析に失敗しました: %v", err)
		}
		want := &domain.BatchFile{Items: []domain.BatchItem{
			{Name: "hydra", Category: "enemy", Subcategory: "boss", Prompt: "three-headed hydra", God: "poseidon", Size: 256},
			{Prompt: "unnamed"},
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("解析結果が一致しません (-want +got):\n%s", diff)
		}
	})

	t.Run("Markdown形式を解析できること", func(t *testing.T) {
		path := writeBatch(t, "batch.md", "# UI\n## Sprite\n- name: heart\n- category: UI\n- subcategory: icon\n- prompt: red heart\n- size: 16\n")
		got, err := p.ParseFromPath(ctx, path)
		if err != nil {
			t.Fatalf("解析に失敗しました: %v", err)
		}
		want := &domain.BatchFile{Items: []domain.BatchItem{
			{Name: "heart", Category: "ui", Subcategory: "icon", Prompt: "red heart", Size: 16},
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("解析結果が一致しません (-want +got):\n%s", diff)
		}
	})

	t.Run("ファイルが無い場合は ErrNotFound になること", func(t *testing.T) {
		_, err := p.ParseFromPath(ctx, filepath.Join(t.TempDir(), "none.json"))
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ErrNotFound が返っていません: %v", err)
		}
	})

	t.Run("不正なJSONはエラーになること", func(t *testing.T) {
		path := writeBatch(t, "broken.json", `{"items": [`)
		if _, err := p.ParseFromPath(ctx, path); err == nil {
			t.Error("エラーが返っていません")
		}
	})
}

// bucketReader は gs:// のオブジェクトをメモリ上から返す InputReader です。
type bucketReader map[string]string

func (b bucketReader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	content, ok := b[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestBatchParser_RemoteBatch(t *testing.T) {
	ctx := context.Background()
	p := NewBatchParser(bucketReader{
		"gs://sprites/batches/enemies.json": `{"items":[
			{"name":"slime","category":"enemy","reference":"refs/slime.png"},
			{"name":"bat","category":"enemy","reference":"gs://shared/bat.png"}
		]}`,
	})

	got, err := p.ParseFromPath(ctx, "gs://sprites/batches/enemies.json")
	if err != nil {
		t.Fatalf("解析に失敗しました: %v", err)
	}
	want := &domain.BatchFile{Items: []domain.BatchItem{
		{Name: "slime", Category: "enemy", Reference: "gs://sprites/batches/refs/slime.png"},
		{Name: "bat", Category: "enemy", Reference: "gs://shared/bat.png"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("解析結果が一致しません (-want +got):\n%s", diff)
	}

	if _, err := p.ParseFromPath(ctx, "gs://sprites/batches/none.json"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ErrNotFound が返っていません: %v", err)
	}
}

func TestMarkdownParser_Parse(t *testing.T) {
	p := NewMarkdownParser()

	t.Run("複数の項目に分割されること", func(t *testing.T) {
		input := `
# Enemies
## Sprite
- name: slime
- prompt: green slime
- frames: 4
- unknown: ignored

## Sprite
- name: bat
- god: Ares
`
		got, err := p.Parse(input)
		if err != nil {
			t.Fatalf("解析に失敗しました: %v", err)
		}
		want := &domain.BatchFile{Items: []domain.BatchItem{
			{Name: "slime", Prompt: "green slime", Frames: 4},
			{Name: "bat", God: "ares"},
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("解析結果が一致しません (-want +got):\n%s", diff)
		}
	})

	t.Run("見出しに添えた名前が使われ、他の見出しで項目が閉じること", func(t *testing.T) {
		input := `
## Sprite: hero_walk
- category: player
- size:
- frames: 6
### Notes
- frames: 99

## Sprites overview
- name: ignored
`
		got, err := p.Parse(input)
		if err != nil {
			t.Fatalf("解析に失敗しました: %v", err)
		}
		want := &domain.BatchFile{Items: []domain.BatchItem{
			{Name: "hero_walk", Category: "player", Frames: 6},
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("解析結果が一致しません (-want +got):\n%s", diff)
		}
	})

	t.Run("数値でない frames はエラーになること", func(t *testing.T) {
		if _, err := p.Parse("## Sprite\n- name: a\n- frames: many\n"); err == nil {
			t.Error("エラーが返っていません")
		}
	})

	t.Run("項目が無い場合はエラーになること", func(t *testing.T) {
		if _, err := p.Parse("# Title only\n"); err == nil {
			t.Error("エラーが返っていません")
		}
	})
}

func TestSampleBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), examples.BatchFileName)
	if err := os.WriteFile(path, examples.BatchJSON, 0o644); err != nil {
		t.Fatalf("サンプルの書き出しに失敗しました: %v", err)
	}

	got, err := NewBatchParser(nil).ParseFromPath(context.Background(), path)
	if err != nil {
		t.Fatalf("サンプルの解析に失敗しました: %v", err)
	}
	want, err := examples.LoadBatch()
	if err != nil {
		t.Fatalf("埋め込みサンプルの読み込みに失敗しました: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("サンプルの解析結果が一致しません (-want +got):\n%s", diff)
	}
	for _, item := range got.Items {
		if !domain.IsValidCategory(item.Category) {
			t.Errorf("サンプルに不正なカテゴリがあります: %s", item.Category)
		}
	}
}
