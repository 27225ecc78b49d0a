package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-comic-kit/internal/builder"
	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/internal/runner"
	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/parser"
	"github.com/shouni/go-comic-kit/pkg/source"
)

// Execute は、入力画像の列挙からページ画像の保存までを一気通貫で実行するのだ。
// 個々の画像やページの失敗では止まらず、最後にまとめて警告するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx := builder.NewAppContext(cfg)

	// --- Phase 1: Resolve (プリセットと入力の確定) ---
	preset, refs, err := runResolveStep(ctx, &appCtx)
	if err != nil {
		return err
	}

	// --- Phase 2: Compose (ページ合成と保存) ---
	report, err := runComposeStep(ctx, &appCtx, preset, refs)
	if err != nil {
		return err
	}

	// --- Phase 3: Summarize (結果の集計) ---
	return summarizeReport(report)
}

// ExecutePlan は、ページ画像を一切書き出さずにページ割りの試算だけを実行し、
// 結果を out へ表示するのだ。
func ExecutePlan(ctx context.Context, cfg *config.Config, out io.Writer) error {
	appCtx := builder.NewAppContext(cfg)

	preset, refs, err := runResolveStep(ctx, &appCtx)
	if err != nil {
		return err
	}

	planRunner := runner.NewDefaultPlanRunner()
	plan, err := planRunner.Run(ctx, preset, refs)
	if err != nil {
		return fmt.Errorf("ページ割りの試算に失敗したのだ: %w", err)
	}

	return writePlan(out, plan)
}

// runResolveStep はプリセットの読み込みと入力画像の列挙を行うのだ
func runResolveStep(ctx context.Context, appCtx *builder.AppContext) (*domain.LayoutPreset, []source.ImageRef, error) {
	slog.Info("Phase 1: プリセットと入力画像を確定するのだ...", "preset", appCtx.Options.Preset)

	preset, err := parser.LoadPreset(ctx, appCtx.Options.Preset)
	if err != nil {
		return nil, nil, fmt.Errorf("プリセットの読み込みに失敗したのだ: %w", err)
	}

	refs, err := appCtx.Source.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("入力画像の列挙に失敗したのだ: %w", err)
	}
	return preset, refs, nil
}

// runComposeStep は ComposeRunner を使ってページ合成と保存を実行するのだ
func runComposeStep(ctx context.Context, appCtx *builder.AppContext, preset *domain.LayoutPreset, refs []source.ImageRef) (*domain.Report, error) {
	slog.Info("Phase 2: ページ合成を開始するのだ...", "images", len(refs), "fit", appCtx.Options.FitMode)

	composeRunner, err := builder.BuildComposeRunner(appCtx, preset, refs)
	if err != nil {
		return nil, fmt.Errorf("ComposeRunnerの構築に失敗したのだ: %w", err)
	}

	report, err := composeRunner.Run(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("ページ合成に失敗したのだ: %w", err)
	}
	return report, nil
}

// summarizeReport は実行結果を警告として report から吸い上げるのだ。
// 一部の失敗は警告に留めて正常終了とし、全ページの書き出しに失敗した場合だけ
// エラーを返すのだ。
func summarizeReport(report *domain.Report) error {
	failedCells := report.FailedCells()
	failedPages := report.FailedPages()

	for _, cell := range failedCells {
		slog.Warn("配置できなかった画像があるのだ",
			"path", cell.ImagePath, "page", cell.PageIndex+1, "cell", cell.CellIndex+1, "error", cell.Err)
	}
	for _, page := range failedPages {
		slog.Warn("保存できなかったページがあるのだ",
			"page", page.Index+1, "path", page.Path, "error", page.Err)
	}

	if len(failedPages) == len(report.Pages) {
		return fmt.Errorf("全ページの書き出しに失敗したのだ")
	}

	if report.Ok() {
		slog.Info("すべてのページが完成したのだ！", "pages", len(report.Pages))
		return nil
	}

	slog.Warn("一部の失敗を除いて処理を終えたのだ",
		"pages", len(report.Pages),
		"failed_images", len(failedCells),
		"failed_pages", len(failedPages))
	return nil
}

// writePlan は試算結果を人間が読みやすい形で書き出すのだ
func writePlan(out io.Writer, plan *runner.PlanReport) error {
	fmt.Fprintf(out, "プリセット: %s (%dx%d, %d セル/ページ)\n",
		plan.PresetName, plan.PageWidth, plan.PageHeight, plan.CellsPerPage)
	fmt.Fprintf(out, "入力画像: %d 枚 → %d ページ（最終ページは %d/%d セル）\n\n",
		len(plan.Placements), plan.Pages, plan.LastPageFill, plan.CellsPerPage)

	for _, p := range plan.Placements {
		if p.Err != nil {
			fmt.Fprintf(out, "ページ %d セル %d: %s (寸法を読めません: %v)\n",
				p.Page+1, p.Cell+1, p.Path, p.Err)
			continue
		}
		fmt.Fprintf(out, "ページ %d セル %d: %s (%dx%d)\n",
			p.Page+1, p.Cell+1, p.Path, p.Width, p.Height)
	}
	return nil
}
