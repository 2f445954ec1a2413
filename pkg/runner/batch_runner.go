package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-sprite-kit/pkg/domain"
	"golang.org/x/time/rate"
)

// SpriteRunner は1件分の生成処理です。
type SpriteRunner interface {
	Run(ctx context.Context, req domain.GenerateRequest) (*Result, error)
}

// BatchReport はバッチ生成の集計です。
type BatchReport struct {
	Total     int
	Succeeded int
	Failed    []string // 失敗した項目の name
	Results   []*Result
}

// BatchRunner は複数の要求を順番に処理します。1件の失敗でバッチ全体は止めません。
type BatchRunner struct {
	runner   SpriteRunner
	interval time.Duration
}

// NewBatchRunner は、依存関係を注入して初期化します。interval が 0 の場合は待機しません。
func NewBatchRunner(runner SpriteRunner, interval time.Duration) *BatchRunner {
	return &BatchRunner{
		runner:   runner,
		interval: interval,
	}
}

// Run は要求を先頭から1件ずつ生成します。
// 個々の失敗は警告ログに残して次へ進みますが、コンテキストのキャンセルでは中断します。
func (b *BatchRunner) Run(ctx context.Context, reqs []domain.GenerateRequest) (*BatchReport, error) {
	var limiter *rate.Limiter
	if b.interval > 0 {
		limiter = rate.NewLimiter(rate.Every(b.interval), 1)
	}

	report := &BatchReport{Total: len(reqs)}
	slog.InfoContext(ctx, "バッチ生成を開始します", "items", len(reqs))

	for i, req := range reqs {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return report, fmt.Errorf("レート制限の待機中に中断されました: %w", err)
			}
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		slog.InfoContext(ctx, "生成中", "index", i+1, "total", len(reqs), "name", req.Name)
		res, err := b.runner.Run(ctx, req)
		if err != nil {
			slog.WarnContext(ctx, "生成に失敗しました", "name", req.Name, "error", err)
			report.Failed = append(report.Failed, req.Name)
			continue
		}
		report.Succeeded++
		report.Results = append(report.Results, res)
	}

	slog.InfoContext(ctx, "バッチ生成が完了しました",
		"total", report.Total,
		"succeeded", report.Succeeded,
		"failed", len(report.Failed),
	)
	return report, nil
}
