package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

type memoryReader struct {
	files map[string]string
	opens int
}

func (m *memoryReader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	m.opens++
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestLocalWriter_Write(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "used", "player", "idle.png")

	if err := (LocalWriter{}).Write(ctx, path, strings.NewReader("png-bytes"), "image/png"); err != nil {
		t.Fatalf("書き込みに失敗しました: %v", err)
	}

	got, err := ReadAll(ctx, LocalReader{}, path)
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("内容が一致しません: %q", got)
	}

	t.Run("上書きされること", func(t *testing.T) {
		if err := (LocalWriter{}).Write(ctx, path, strings.NewReader("new"), "image/png"); err != nil {
			t.Fatalf("書き込みに失敗しました: %v", err)
		}
		got, _ := ReadAll(ctx, LocalReader{}, path)
		if string(got) != "new" {
			t.Errorf("上書きされていません: %q", got)
		}
	})

	t.Run("キャンセル済みのコンテキストでは書き込まないこと", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		other := filepath.Join(filepath.Dir(path), "walk.png")
		if err := (LocalWriter{}).Write(cctx, other, strings.NewReader("x"), "image/png"); !errors.Is(err, context.Canceled) {
			t.Errorf("context.Canceled が返っていません: %v", err)
		}
		if _, err := os.Stat(other); !errors.Is(err, os.ErrNotExist) {
			t.Error("ファイルが作成されました")
		}
	})
}

func TestReader_Routing(t *testing.T) {
	ctx := context.Background()
	local := filepath.Join(t.TempDir(), "batch.json")
	if err := os.WriteFile(local, []byte(`{"items":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	remote := &memoryReader{files: map[string]string{"gs://bucket/batch.json": "remote"}}
	created := 0
	r := NewReader(func(context.Context) (remoteio.InputReader, error) {
		created++
		return remote, nil
	})

	t.Run("ローカルのパスではリモートを作らないこと", func(t *testing.T) {
		got, err := ReadAll(ctx, r, local)
		if err != nil {
			t.Fatalf("読み込みに失敗しました: %v", err)
		}
		if string(got) != `{"items":[]}` {
			t.Errorf("内容が一致しません: %q", got)
		}
		if created != 0 {
			t.Errorf("リモートのリーダーが作られました: %d", created)
		}
	})

	t.Run("gs:// のパスはリモートから読み、リーダーは一度だけ作ること", func(t *testing.T) {
		for range 2 {
			got, err := ReadAll(ctx, r, "gs://bucket/batch.json")
			if err != nil {
				t.Fatalf("読み込みに失敗しました: %v", err)
			}
			if string(got) != "remote" {
				t.Errorf("内容が一致しません: %q", got)
			}
		}
		if created != 1 || remote.opens != 2 {
			t.Errorf("created = %d, opens = %d", created, remote.opens)
		}
	})

	t.Run("リモートが未設定なら gs:// はエラーになること", func(t *testing.T) {
		if _, err := NewReader(nil).Open(ctx, "gs://bucket/batch.json"); err == nil {
			t.Error("エラーが返っていません")
		}
	})

	t.Run("ローカルに無いファイルは os.ErrNotExist になること", func(t *testing.T) {
		if _, err := r.Open(ctx, filepath.Join(t.TempDir(), "none.json")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("os.ErrNotExist が返っていません: %v", err)
		}
	})
}

func TestDirJoin(t *testing.T) {
	tests := []struct {
		base, rel, want string
	}{
		{"gs://bucket/batches", "refs/hero.png", "gs://bucket/batches/refs/hero.png"},
		{"gs://bucket/batches/", "./hero.png", "gs://bucket/batches/hero.png"},
		{filepath.Join("a", "b"), "refs/hero.png", filepath.Join("a", "b", "refs", "hero.png")},
	}
	for _, tt := range tests {
		if got := Join(tt.base, tt.rel); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}

	if got := Dir("gs://bucket/batches/batch.json"); got != "gs://bucket/batches" {
		t.Errorf("Dir = %q", got)
	}
	if got := Dir(filepath.Join("a", "batch.json")); got != "a" {
		t.Errorf("Dir = %q", got)
	}
}
