package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/go-sprite-kit/pkg/storage"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
)

var referenceMimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// MimeTypeFor は拡張子から参照画像の MIME タイプを推定します。不明な場合は image/png です。
func MimeTypeFor(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if mt, ok := referenceMimeTypes[ext]; ok {
		return mt
	}
	return DefaultMimeType
}

// ReferenceLoader は参照画像を読み込みます。
// バッチで同じ参照画像を使い回す場合に備えて、パスごとに内容をキャッシュします。
type ReferenceLoader struct {
	reader remoteio.InputReader
	cache  *cache.Cache
}

// NewReferenceLoader は新しい ReferenceLoader を生成します。reader が nil の場合はローカルファイルを読みます。
func NewReferenceLoader(reader remoteio.InputReader) *ReferenceLoader {
	if reader == nil {
		reader = storage.LocalReader{}
	}
	return &ReferenceLoader{
		reader: reader,
		cache:  cache.New(defaultCacheExpiration, cacheCleanupInterval),
	}
}

// Load は参照画像を読み込みます。ファイルが無い場合は os.ErrNotExist をラップしたエラーを返します。
func (l *ReferenceLoader) Load(ctx context.Context, path string) (*ReferenceImage, error) {
	if cached, ok := l.cache.Get(path); ok {
		if ref, ok := cached.(*ReferenceImage); ok {
			return ref, nil
		}
	}

	data, err := storage.ReadAll(ctx, l.reader, path)
	if err != nil {
		return nil, fmt.Errorf("参照画像の読み込みに失敗しました (%s): %w", path, err)
	}

	ref := &ReferenceImage{
		Path:     path,
		Data:     data,
		MimeType: MimeTypeFor(path),
	}
	l.cache.Set(path, ref, cache.DefaultExpiration)
	return ref, nil
}
