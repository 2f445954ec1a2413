package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shouni/go-sprite-kit/pkg/domain"
)

const (
	imageContentType    = "image/png"
	metadataContentType = "application/json; charset=utf-8"
)

// writeAsset は画像とメタデータを Placement の位置に書き出します。
func (m *Manager) writeAsset(ctx context.Context, p Placement, data []byte, meta domain.AssetMetadata) error {
	if err := m.writer.Write(ctx, p.Path, bytes.NewReader(data), imageContentType); err != nil {
		return fmt.Errorf("画像の保存に失敗しました (%s): %w", p.Path, err)
	}
	return m.writeMetadata(ctx, p.MetaPath, meta)
}

// writeMetadata はメタデータをインデント付き JSON として書き出します。
func (m *Manager) writeMetadata(ctx context.Context, path string, meta domain.AssetMetadata) error {
	data, err := domain.EncodeMetadata(meta)
	if err != nil {
		return err
	}
	if err := m.writer.Write(ctx, path, bytes.NewReader(data), metadataContentType); err != nil {
		return fmt.Errorf("メタデータの保存に失敗しました (%s): %w", path, err)
	}
	return nil
}

// copyFile は src を dst にコピーし、更新時刻を引き継ぎます。dst が既にあれば上書きします。
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("コピー元を開けません (%s): %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("コピー元の情報を取得できません (%s): %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("コピー先を作成できません (%s): %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("コピーに失敗しました (%s -> %s): %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("コピー先のクローズに失敗しました (%s): %w", dst, err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("更新時刻の設定に失敗しました (%s): %w", dst, err)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
