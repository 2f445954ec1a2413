package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/storage"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"gopkg.in/yaml.v3"
)

// Parser は解析するためのインターフェースを定義します。
type Parser interface {
	ParseFromPath(ctx context.Context, fullPath string) (*domain.BatchFile, error)
}

// BatchParser は JSON / YAML / Markdown 形式のバッチファイルを解析する構造体です。
type BatchParser struct {
	reader   remoteio.InputReader
	markdown *MarkdownParser
}

// NewBatchParser は新しい BatchParser インスタンスを生成します。r が nil の場合はローカルファイルを読みます。
func NewBatchParser(r remoteio.InputReader) *BatchParser {
	if r == nil {
		r = storage.LocalReader{}
	}
	return &BatchParser{
		reader:   r,
		markdown: NewMarkdownParser(),
	}
}

// ParseFromPath はバッチファイルを読み込み、拡張子に応じた形式で解析して domain.BatchFile を返します。
// 参照画像の相対パスはバッチファイルのディレクトリを基準に解決します。
func (p *BatchParser) ParseFromPath(ctx context.Context, batchFile string) (*domain.BatchFile, error) {
	slog.InfoContext(ctx, "バッチファイルを読み込んでいます", "path", batchFile)
	rc, err := p.reader.Open(ctx, batchFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: バッチファイルが見つかりません: %s", domain.ErrNotFound, batchFile)
	}
	if err != nil {
		return nil, fmt.Errorf("バッチファイルのオープンに失敗しました (%s): %w", batchFile, err)
	}
	defer rc.Close()

	batch := &domain.BatchFile{}
	switch strings.ToLower(filepath.Ext(batchFile)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(rc).Decode(batch); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("バッチYAMLのパースに失敗しました: %w", err)
		}
	case ".md", ".markdown":
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("バッチファイルの読み込みに失敗しました (%s): %w", batchFile, err)
		}
		batch, err = p.markdown.Parse(string(content))
		if err != nil {
			return nil, err
		}
	default:
		if err := json.NewDecoder(rc).Decode(batch); err != nil {
			return nil, fmt.Errorf("バッチJSONのパースに失敗しました: %w", err)
		}
	}

	baseDir := storage.Dir(batchFile)
	for i := range batch.Items {
		batch.Items[i].Reference = resolveReference(baseDir, batch.Items[i].Reference)
	}

	slog.DebugContext(ctx, "バッチファイルを解析しました", "path", batchFile, "items", len(batch.Items))
	return batch, nil
}
