package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-sprite-kit/internal/builder"
	"github.com/shouni/go-sprite-kit/pkg/asset"
)

// 一覧表示の対象なのだ。
const (
	ListStaging      = "staging"
	ListUsed         = "used"
	ListAlternatives = "alternatives"
)

// ListStatuses は list コマンドが受け付ける状態なのだ。
var ListStatuses = []string{ListStaging, ListUsed, ListAlternatives}

// ExecuteList は、指定された状態のアセットを一覧表示するのだ。
// used は category を指定するとキーの先頭一致で絞り込むのだ。
func ExecuteList(ctx context.Context, appCtx *builder.AppContext, status, category string, out io.Writer) error {
	slog.DebugContext(ctx, "一覧を表示するのだ", "status", status, "category", category)
	switch status {
	case ListStaging:
		metas, err := appCtx.Assets.ListStaging()
		if err != nil {
			return err
		}
		renderStaging(out, metas)
	case ListUsed:
		manifest, err := appCtx.Assets.Manifest()
		if err != nil {
			return err
		}
		renderUsed(out, manifest, category)
	case ListAlternatives:
		metas, err := appCtx.Assets.ListAlternatives()
		if err != nil {
			return err
		}
		renderAlternatives(out, metas)
	default:
		return fmt.Errorf("未知の状態なのだ: %q (使えるのは %v)", status, ListStatuses)
	}
	return nil
}

// ExecuteApprove は、ステージング中のアセットを used に昇格させるのだ。
// ID や項目の確認が済むまでディレクトリは作らないのだ。
func ExecuteApprove(ctx context.Context, appCtx *builder.AppContext, id string, target asset.Target, out io.Writer) error {
	p, err := appCtx.Assets.Approve(ctx, id, target)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "承認が完了したのだ", "id", id, "key", p.Key)
	fmt.Fprintf(out, "%s %s -> %s\n", okStyle.Render("Approved:"), idStyle.Render(p.Key), p.Path)
	return nil
}

// ExecuteReject は、ステージング中のアセットを alternatives に移すのだ。
func ExecuteReject(ctx context.Context, appCtx *builder.AppContext, id, reason string, out io.Writer) error {
	p, err := appCtx.Assets.Reject(ctx, id, reason)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "却下が完了したのだ", "id", id)
	fmt.Fprintf(out, "%s %s -> %s\n", warnStyle.Render("Rejected:"), idStyle.Render(id), p.Path)
	return nil
}

// ExecuteApply は、任意の画像ファイルをマニフェストに記録するのだ。
func ExecuteApply(ctx context.Context, appCtx *builder.AppContext, path string, out io.Writer) error {
	p, err := appCtx.Assets.Apply(path)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "マニフェストに記録したのだ", "key", p.Key)
	fmt.Fprintf(out, "%s %s -> %s\n", okStyle.Render("Applied:"), idStyle.Render(p.Key), p.Path)
	return nil
}

// ExecutePreview は、ID・パス・キーのいずれかで指定されたアセットをビューアで開くのだ。
func ExecutePreview(ctx context.Context, appCtx *builder.AppContext, id string, out io.Writer) error {
	path, err := appCtx.Assets.Resolve(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Opening: %s\n", path)
	if err := appCtx.Opener.Open(path); err != nil {
		slog.WarnContext(ctx, "ビューアを開けなかったのだ。パスを直接開いてほしいのだ", "path", path, "error", err)
	}
	return nil
}
