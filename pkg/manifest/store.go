package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shouni/go-sprite-kit/pkg/domain"
)

// Store は manifest.json を文書全体として読み書きします。
// ロックは取りません。同時に複数のプロセスから書き込むと後勝ちになります。
type Store struct {
	path string
}

// NewStore は指定されたパスを扱う Store を生成します。
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path は読み書きするファイルのパスを返します。
func (s *Store) Path() string {
	return s.path
}

// Exists はマニフェストのファイルが存在するかを返します。
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load はマニフェストを読み込みます。ファイルが無ければ空のマニフェストを返します。
func (s *Store) Load() (domain.Manifest, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.NewManifest(), nil
	}
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("マニフェストの読み込みに失敗しました (%s): %w", s.path, err)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Manifest{}, fmt.Errorf("マニフェストのJSONパースに失敗しました (%s): %w", s.path, err)
	}
	if m.Assets == nil {
		m.Assets = make(map[string]domain.ManifestEntry)
	}
	return m, nil
}

// Save はマニフェスト全体を書き出します。
func (s *Store) Save(m domain.Manifest) error {
	if m.Version == 0 {
		m.Version = domain.ManifestVersion
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("マニフェストのエンコードに失敗しました: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("マニフェストのディレクトリ作成に失敗しました: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("マニフェストの書き込みに失敗しました (%s): %w", s.path, err)
	}
	return nil
}
