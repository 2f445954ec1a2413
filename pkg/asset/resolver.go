package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-sprite-kit/pkg/domain"
)

const (
	// SpritesDir はプロジェクトルートからスプライト置き場までの相対パスです。
	SpritesDir = "assets/sprites"

	StagingDirName      = "staging"
	UsedDirName         = "used"
	AlternativesDirName = "alternatives"

	// DefaultManifestName はゲームが読み込むマニフェストのファイル名です。
	DefaultManifestName = "manifest.json"
	// DefaultStyleGuideName はスタイルガイドのファイル名です。
	DefaultStyleGuideName = "style_guide.json"

	// StagingImageName と StagingMetaName はステージングエントリ内の固定ファイル名です。
	StagingImageName = "sprite.png"
	StagingMetaName  = "metadata.json"

	ImageExt = ".png"
	MetaExt  = ".meta.json"
)

// defaultUsedDirs は init 時に used 配下へ作成するカテゴリのディレクトリです。
var defaultUsedDirs = []string{
	"player",
	"enemy/minor",
	"enemy/major",
	"enemy/boss",
	"terrain/platform",
	"terrain/wall",
	"terrain/background",
	"terrain/tileset",
	"weapon",
	"effect",
	"ui/icon",
	"ui/bar",
}

// Layout はスプライト置き場のディレクトリ構成を解決します。
//
//	<project>/assets/sprites/
//	├── manifest.json
//	├── style_guide.json
//	├── staging/<id>/{sprite.png,metadata.json}
//	├── used/<category>[/<subcategory>]/<name>.{png,meta.json}
//	└── alternatives/<id>/{sprite.png,metadata.json}
type Layout struct {
	projectRoot string
	spritesRoot string
}

// NewLayout はプロジェクトルートを絶対パスに正規化して Layout を生成します。
func NewLayout(projectRoot string) (Layout, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return Layout{}, fmt.Errorf("プロジェクトルートの解決に失敗しました (%s): %w", projectRoot, err)
	}
	return Layout{
		projectRoot: abs,
		spritesRoot: filepath.Join(abs, filepath.FromSlash(SpritesDir)),
	}, nil
}

func (l Layout) ProjectRoot() string { return l.projectRoot }
func (l Layout) SpritesRoot() string { return l.spritesRoot }
func (l Layout) StagingRoot() string { return filepath.Join(l.spritesRoot, StagingDirName) }
func (l Layout) UsedRoot() string { return filepath.Join(l.spritesRoot, UsedDirName) }
func (l Layout) AlternativesRoot() string { return filepath.Join(l.spritesRoot, AlternativesDirName) }
func (l Layout) ManifestPath() string { return filepath.Join(l.spritesRoot, DefaultManifestName) }
func (l Layout) StyleGuidePath() string { return filepath.Join(l.spritesRoot, DefaultStyleGuideName) }

// StagingEntry はステージング ID に対応するディレクトリです。
func (l Layout) StagingEntry(id string) string {
	return filepath.Join(l.StagingRoot(), id)
}

// AlternativeEntry は却下されたアセットの保管先です。ID はステージング時のものを引き継ぎます。
func (l Layout) AlternativeEntry(id string) string {
	return filepath.Join(l.AlternativesRoot(), id)
}

// UsedDir は category と subcategory から used 配下のディレクトリを返します。
func (l Layout) UsedDir(category, subcategory string) string {
	if subcategory != "" {
		return filepath.Join(l.UsedRoot(), category, subcategory)
	}
	return filepath.Join(l.UsedRoot(), category)
}

// UsedPaths は採用済みアセットの画像とメタデータのパスを返します。
func (l Layout) UsedPaths(category, subcategory, name string) (image, meta string) {
	dir := l.UsedDir(category, subcategory)
	return filepath.Join(dir, name+ImageExt), filepath.Join(dir, name+MetaExt)
}

// Ensure はスプライト置き場の標準ディレクトリを作成します。既にあれば何もしません。
func (l Layout) Ensure() error {
	dirs := []string{l.StagingRoot(), l.AlternativesRoot()}
	for _, d := range defaultUsedDirs {
		dirs = append(dirs, filepath.Join(l.UsedRoot(), filepath.FromSlash(d)))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("ディレクトリの作成に失敗しました (%s): %w", d, err)
		}
	}
	return nil
}

// RelativeToProject はマニフェストに記録するための、プロジェクトルートからのスラッシュ区切りパスを返します。
func (l Layout) RelativeToProject(path string) (string, error) {
	rel, err := filepath.Rel(l.projectRoot, path)
	if err != nil || isOutside(rel) {
		return "", fmt.Errorf("%w: プロジェクトルートの外にあります: %s", domain.ErrInvalidPath, path)
	}
	return filepath.ToSlash(rel), nil
}

// FromProject はマニフェストに記録された相対パスを絶対パスに戻します。
func (l Layout) FromProject(rel string) string {
	return filepath.Join(l.projectRoot, filepath.FromSlash(rel))
}

// KeyFromUsedPath は used 配下の位置からアセットキーを導出します。
// ディレクトリ部分をドットで連結し、最後にファイル名から拡張子を除いたものを付けます。
func (l Layout) KeyFromUsedPath(path string) (string, error) {
	rel, err := filepath.Rel(l.UsedRoot(), path)
	if err != nil || isOutside(rel) || rel == "." {
		return "", fmt.Errorf("%w: used ディレクトリの外にあります: %s", domain.ErrInvalidPath, path)
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")
	stem := Stem(segments[len(segments)-1])
	dirs := segments[:len(segments)-1]
	if len(dirs) == 0 {
		return stem, nil
	}
	return strings.Join(dirs, ".") + "." + stem, nil
}

// MetaPathFor は画像ファイルに隣接するメタデータのパスを返します (idle.png -> idle.meta.json)。
func MetaPathFor(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + MetaExt
}

// Stem はファイル名から拡張子を除いた部分を返します。
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isOutside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
