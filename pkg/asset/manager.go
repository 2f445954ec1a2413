package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shouni/go-sprite-kit/pkg/config"
	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/storage"

	"github.com/google/uuid"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ManifestStore はマニフェスト文書の永続化先です。
type ManifestStore interface {
	Load() (domain.Manifest, error)
	Save(m domain.Manifest) error
}

// IDGenerator はステージング ID を生成します。
type IDGenerator func() string

// ShortUUID は UUID v4 の先頭8文字を返します。
func ShortUUID() string {
	return uuid.NewString()[:8]
}

// Target は承認時に明示する category/subcategory/name です。空の項目はメタデータの値を使います。
type Target struct {
	Category    string
	Subcategory string
	Name        string
}

// Placement は状態遷移の結果として確定したアセットの位置です。
type Placement struct {
	ID       string
	Key      string // used に置かれた場合のみ
	Path     string
	MetaPath string
	Status   domain.Status
}

// Manager はステージング → used / alternatives の状態遷移とマニフェストへの記録を担います。
type Manager struct {
	layout Layout
	store  ManifestStore
	writer remoteio.OutputWriter
	newID  IDGenerator
	now    func() time.Time
}

// NewManager は依存関係を注入して初期化します。
// writer が nil の場合はローカルに書き出し、newID が nil の場合は ShortUUID を使います。
func NewManager(layout Layout, store ManifestStore, writer remoteio.OutputWriter, newID IDGenerator) *Manager {
	if writer == nil {
		writer = storage.LocalWriter{}
	}
	if newID == nil {
		newID = ShortUUID
	}
	return &Manager{
		layout: layout,
		store:  store,
		writer: writer,
		newID:  newID,
		now:    time.Now,
	}
}

// Layout はディレクトリ構成を返します。
func (m *Manager) Layout() Layout {
	return m.layout
}

// CreateStaged は生成された画像を新しい staging/<id>/ に書き出します。
func (m *Manager) CreateStaged(ctx context.Context, data []byte, meta domain.AssetMetadata) (Placement, error) {
	if meta.ID == "" {
		meta.ID = m.newID()
	}
	meta.Status = domain.StatusStaging

	dir := m.layout.StagingEntry(meta.ID)
	p := Placement{
		ID:       meta.ID,
		Path:     filepath.Join(dir, StagingImageName),
		MetaPath: filepath.Join(dir, StagingMetaName),
		Status:   domain.StatusStaging,
	}
	if err := m.writeAsset(ctx, p, data, meta); err != nil {
		return Placement{}, err
	}

	slog.InfoContext(ctx, "アセットをステージングしました", "id", meta.ID, "path", p.Path)
	return p, nil
}

// CreateDirect は生成された画像を used 配下に直接書き出し、マニフェストに記録します。
func (m *Manager) CreateDirect(ctx context.Context, data []byte, meta domain.AssetMetadata) (Placement, error) {
	if meta.Category == "" || meta.Name == "" {
		return Placement{}, fmt.Errorf("%w: category と name は必須です", domain.ErrMissingFields)
	}
	if meta.ID == "" {
		meta.ID = m.newID()
	}
	meta.Status = domain.StatusUsed

	image, metaPath := m.layout.UsedPaths(meta.Category, meta.Subcategory, meta.Name)
	p := Placement{
		ID:       meta.ID,
		Key:      meta.Key(),
		Path:     image,
		MetaPath: metaPath,
		Status:   domain.StatusUsed,
	}
	if err := m.writeAsset(ctx, p, data, meta); err != nil {
		return Placement{}, err
	}
	if err := m.record(p.Key, p.Path, meta.FramesOrDefault(), meta.SizeOrDefault(config.DefaultSpriteSize)); err != nil {
		return Placement{}, err
	}

	slog.InfoContext(ctx, "アセットを直接配置しました", "key", p.Key, "path", p.Path)
	return p, nil
}

// Approve はステージング中のアセットを used に昇格させます。
// 画像のコピー、メタデータの書き出し、マニフェストへの記録、ステージングの削除の順に行い、
// この一連の処理はアトミックではありません。途中で失敗するとステージングと used の両方に残ることがあります。
func (m *Manager) Approve(ctx context.Context, id string, target Target) (Placement, error) {
	if !validID(id) {
		return Placement{}, fmt.Errorf("%w: ステージングアセットが見つかりません: %s", domain.ErrNotFound, id)
	}
	dir := m.layout.StagingEntry(id)
	if !isDir(dir) {
		return Placement{}, fmt.Errorf("%w: ステージングアセットが見つかりません: %s", domain.ErrNotFound, id)
	}

	meta, err := domain.LoadMetadata(filepath.Join(dir, StagingMetaName))
	if errors.Is(err, os.ErrNotExist) {
		return Placement{}, fmt.Errorf("%w: メタデータが見つかりません: %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return Placement{}, err
	}

	meta.Category = firstNonEmpty(target.Category, meta.Category)
	meta.Subcategory = firstNonEmpty(target.Subcategory, meta.Subcategory)
	meta.Name = firstNonEmpty(target.Name, meta.Name)
	if meta.Category == "" || meta.Name == "" {
		return Placement{}, fmt.Errorf("%w: --category と --name を指定するか、メタデータに含めてください", domain.ErrMissingFields)
	}

	src := filepath.Join(dir, StagingImageName)
	if !isFile(src) {
		return Placement{}, fmt.Errorf("%w: ステージング画像が見つかりません: %s", domain.ErrNotFound, src)
	}

	destDir := m.layout.UsedDir(meta.Category, meta.Subcategory)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Placement{}, fmt.Errorf("出力ディレクトリの作成に失敗しました (%s): %w", destDir, err)
	}
	image, metaPath := m.layout.UsedPaths(meta.Category, meta.Subcategory, meta.Name)
	if err := copyFile(src, image); err != nil {
		return Placement{}, err
	}

	approvedAt := m.now()
	meta.Status = domain.StatusUsed
	meta.ApprovedAt = &approvedAt
	if err := m.writeMetadata(ctx, metaPath, meta); err != nil {
		return Placement{}, err
	}

	key := meta.Key()
	if err := m.record(key, image, meta.FramesOrDefault(), meta.SizeOrDefault(config.DefaultSpriteSize)); err != nil {
		return Placement{}, err
	}

	if err := os.RemoveAll(dir); err != nil {
		return Placement{}, fmt.Errorf("ステージングディレクトリの削除に失敗しました (%s): %w", dir, err)
	}

	slog.InfoContext(ctx, "アセットを承認しました", "id", id, "key", key, "path", image)
	return Placement{ID: id, Key: key, Path: image, MetaPath: metaPath, Status: domain.StatusUsed}, nil
}

// Reject はステージング中のアセットを alternatives/<id>/ に移動し、却下理由を記録します。
func (m *Manager) Reject(ctx context.Context, id, reason string) (Placement, error) {
	if !validID(id) {
		return Placement{}, fmt.Errorf("%w: ステージングアセットが見つかりません: %s", domain.ErrNotFound, id)
	}
	dir := m.layout.StagingEntry(id)
	if !isDir(dir) {
		return Placement{}, fmt.Errorf("%w: ステージングアセットが見つかりません: %s", domain.ErrNotFound, id)
	}

	altDir := m.layout.AlternativeEntry(id)
	if _, err := os.Stat(altDir); err == nil {
		return Placement{}, fmt.Errorf("却下先が既に存在します: %s", altDir)
	}
	if err := os.MkdirAll(m.layout.AlternativesRoot(), 0o755); err != nil {
		return Placement{}, fmt.Errorf("alternatives ディレクトリの作成に失敗しました: %w", err)
	}
	if err := os.Rename(dir, altDir); err != nil {
		return Placement{}, fmt.Errorf("却下先への移動に失敗しました (%s): %w", altDir, err)
	}

	p := Placement{
		ID:       id,
		Path:     filepath.Join(altDir, StagingImageName),
		MetaPath: filepath.Join(altDir, StagingMetaName),
		Status:   domain.StatusRejected,
	}

	meta, err := domain.LoadMetadata(p.MetaPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.WarnContext(ctx, "メタデータが無いため却下理由を記録できません", "id", id)
		return p, nil
	}
	if err != nil {
		return Placement{}, err
	}

	rejectedAt := m.now()
	meta.Status = domain.StatusRejected
	meta.RejectionReason = reason
	meta.RejectedAt = &rejectedAt
	if err := m.writeMetadata(ctx, p.MetaPath, meta); err != nil {
		return Placement{}, err
	}

	slog.InfoContext(ctx, "アセットを却下しました", "id", id, "reason", reason)
	return p, nil
}

// Apply は任意の画像ファイルをマニフェストに記録します。ファイルの移動は行いません。
// 隣接するメタデータがあればそこからキーを導出し、無ければ used 配下の位置から導出します。
func (m *Manager) Apply(path string) (Placement, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Placement{}, fmt.Errorf("パスの解決に失敗しました (%s): %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return Placement{}, fmt.Errorf("%w: アセットが見つかりません: %s", domain.ErrNotFound, path)
	}

	var (
		key    string
		frames = config.DefaultFrames
		size   = config.DefaultSpriteSize
	)

	metaPath := MetaPathFor(abs)
	meta, err := domain.LoadMetadata(metaPath)
	switch {
	case err == nil:
		category := firstNonEmpty(meta.Category, "unknown")
		name := firstNonEmpty(meta.Name, Stem(abs))
		key = domain.AssetKey(category, meta.Subcategory, name)
		frames = meta.FramesOrDefault()
		size = meta.SizeOrDefault(config.DefaultSpriteSize)
	case errors.Is(err, os.ErrNotExist):
		metaPath = ""
		key, err = m.layout.KeyFromUsedPath(abs)
		if err != nil {
			return Placement{}, err
		}
	default:
		return Placement{}, err
	}

	if err := m.record(key, abs, frames, size); err != nil {
		return Placement{}, err
	}

	slog.Info("マニフェストに記録しました", "key", key, "path", abs)
	return Placement{ID: meta.ID, Key: key, Path: abs, MetaPath: metaPath, Status: domain.StatusUsed}, nil
}

// record はマニフェストのエントリを追加または上書きし、文書全体を保存します。
func (m *Manager) record(key, path string, frames, size int) error {
	rel, err := m.layout.RelativeToProject(path)
	if err != nil {
		return err
	}

	manifest, err := m.store.Load()
	if err != nil {
		return err
	}
	manifest.Upsert(key, domain.ManifestEntry{
		Path:   rel,
		Frames: frames,
		Size:   size,
	})
	if err := m.store.Save(manifest); err != nil {
		return err
	}
	return nil
}

// Manifest は現在のマニフェストを返します。
func (m *Manager) Manifest() (domain.Manifest, error) {
	return m.store.Load()
}

// ListStaging はステージング中のアセットのメタデータを ID 順に返します。
func (m *Manager) ListStaging() ([]domain.AssetMetadata, error) {
	return listEntries(m.layout.StagingRoot())
}

// ListAlternatives は却下済みアセットのメタデータを ID 順に返します。
func (m *Manager) ListAlternatives() ([]domain.AssetMetadata, error) {
	return listEntries(m.layout.AlternativesRoot())
}

// Resolve はプレビュー対象の画像パスを解決します。
// ステージング ID、却下済み ID、ファイルパス、マニフェストキーの順に探します。
func (m *Manager) Resolve(id string) (string, error) {
	var candidates []string
	if validID(id) {
		candidates = append(candidates,
			filepath.Join(m.layout.StagingEntry(id), StagingImageName),
			filepath.Join(m.layout.AlternativeEntry(id), StagingImageName),
		)
	}
	candidates = append(candidates, id)
	for _, c := range candidates {
		if isFile(c) {
			return c, nil
		}
	}

	manifest, err := m.store.Load()
	if err != nil {
		return "", err
	}
	if entry, ok := manifest.Lookup(id); ok {
		path := m.layout.FromProject(entry.Path)
		if isFile(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: アセットが見つかりません: %s", domain.ErrNotFound, id)
}

// listEntries は root 直下の各ディレクトリからメタデータを読み込みます。メタデータの無いエントリは飛ばします。
func listEntries(root string) ([]domain.AssetMetadata, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ディレクトリの読み込みに失敗しました (%s): %w", root, err)
	}

	var metas []domain.AssetMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := domain.LoadMetadata(filepath.Join(root, e.Name(), StagingMetaName))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if meta.ID == "" {
			meta.ID = e.Name()
		}
		metas = append(metas, meta)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].ID < metas[j].ID })
	return metas, nil
}

// validID は id がステージング直下の1要素として扱えるか判定します。
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && filepath.Base(id) == id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
