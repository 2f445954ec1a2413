package parser

import (
	"path/filepath"

	"github.com/shouni/go-sprite-kit/pkg/storage"
)

// resolveReference は参照画像のパスをバッチファイルのディレクトリ基準で解決します。
// 空文字、絶対パス、gs:// のパスはそのまま返します。
func resolveReference(baseDir, ref string) string {
	if ref == "" || filepath.IsAbs(ref) || storage.IsRemote(ref) {
		return ref
	}
	return storage.Join(baseDir, ref)
}
