package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// GCSScheme は Cloud Storage 上のパスを示すプレフィックスです。
const GCSScheme = "gs://"

var (
	_ remoteio.InputReader  = LocalReader{}
	_ remoteio.InputReader  = (*Reader)(nil)
	_ remoteio.OutputWriter = LocalWriter{}
)

// IsRemote は path が Cloud Storage 上のオブジェクトを指すか判定します。
func IsRemote(path string) bool {
	return strings.HasPrefix(path, GCSScheme)
}

// LocalReader はローカルファイルシステムから読み込む remoteio.InputReader です。
type LocalReader struct{}

// Open はファイルを開きます。ファイルが無い場合は os.ErrNotExist をラップしたエラーを返します。
func (LocalReader) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(path)
}

// LocalWriter はローカルファイルシステムへ書き出す remoteio.OutputWriter です。
// 親ディレクトリが無ければ作成します。contentType はローカルでは使いません。
type LocalWriter struct{}

// Write は r の内容を path に書き出します。既存のファイルは上書きします。
func (LocalWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ディレクトリの作成に失敗しました (%s): %w", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("ファイルを作成できません (%s): %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("ファイルの書き込みに失敗しました (%s): %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("ファイルのクローズに失敗しました (%s): %w", path, err)
	}
	return nil
}

// RemoteReaderFactory は gs:// のパスを最初に開くときに呼ばれ、リモート用のリーダーを返します。
type RemoteReaderFactory func(ctx context.Context) (remoteio.InputReader, error)

// Reader はパスの形式に応じてローカルとリモートを振り分ける remoteio.InputReader です。
// リモート用のリーダーは gs:// のパスが来るまで作りません。認証情報の無い環境でもローカルは読めます。
type Reader struct {
	local     remoteio.InputReader
	newRemote RemoteReaderFactory

	mu     sync.Mutex
	remote remoteio.InputReader
}

// NewReader は新しい Reader を生成します。newRemote が nil の場合、gs:// のパスはエラーになります。
func NewReader(newRemote RemoteReaderFactory) *Reader {
	return &Reader{
		local:     LocalReader{},
		newRemote: newRemote,
	}
}

// Open は path を開きます。
func (r *Reader) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !IsRemote(path) {
		return r.local.Open(ctx, path)
	}

	remote, err := r.remoteReader(ctx)
	if err != nil {
		return nil, err
	}
	return remote.Open(ctx, path)
}

func (r *Reader) remoteReader(ctx context.Context) (remoteio.InputReader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.remote != nil {
		return r.remote, nil
	}
	if r.newRemote == nil {
		return nil, fmt.Errorf("リモートストレージのリーダーが設定されていません")
	}
	remote, err := r.newRemote(ctx)
	if err != nil {
		return nil, fmt.Errorf("リモートストレージのリーダーの初期化に失敗しました: %w", err)
	}
	r.remote = remote
	return remote, nil
}

// ReadAll は path の内容をすべて読み込みます。
func ReadAll(ctx context.Context, reader remoteio.InputReader, path string) ([]byte, error) {
	rc, err := reader.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Dir は path の親を返します。gs:// のパスではスキームを崩さずに扱います。
func Dir(path string) string {
	if !IsRemote(path) {
		return filepath.Dir(path)
	}
	rest := strings.TrimPrefix(path, GCSScheme)
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		return GCSScheme + rest[:i]
	}
	return GCSScheme + rest
}

// Join は base と rel を連結します。gs:// のパスではスラッシュ区切りで連結します。
func Join(base, rel string) string {
	if !IsRemote(base) {
		return filepath.Join(base, filepath.FromSlash(rel))
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(filepath.ToSlash(rel), "./")
}
