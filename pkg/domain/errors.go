package domain

import "errors"

// 呼び出し側は errors.Is で判定します。
var (
	// ErrConfigurationMissing は API キーなど、実行に必須の設定が見つからないことを表します。
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrNotFound はステージング ID、ファイルパス、マニフェストキーのいずれかが存在しないことを表します。
	ErrNotFound = errors.New("not found")
	// ErrMissingFields は category または name を引数からもメタデータからも解決できないことを表します。
	ErrMissingFields = errors.New("missing fields")
	// ErrInvalidPath はパスからアセットキーを導出できないことを表します。
	ErrInvalidPath = errors.New("invalid asset path")
)
