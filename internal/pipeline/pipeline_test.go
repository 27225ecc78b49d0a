package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/publisher"
)

// writeTestPreset は 200x100 赤背景・40x40 セル2つのプリセットJSONを書き出すのだ。
func writeTestPreset(t *testing.T, dir string) string {
	t.Helper()
	data := `{
  "name": "pipeline-test",
  "page": {"width": 200, "height": 100, "background_color": "#FF0000"},
  "layout": {
    "cells": [
      {"x": 10, "y": 30, "width": 40, "height": 40},
      {"x": 150, "y": 30, "width": 40, "height": 40}
    ]
  }
}`
	path := filepath.Join(dir, "preset.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("プリセットの書き込みに失敗したのだ: %v", err)
	}
	return path
}

// writeTestImages はセルと同寸の青い PNG を count 枚 dir へ書き出すのだ。
func writeTestImages(t *testing.T, dir string, count int) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("入力ディレクトリの作成に失敗したのだ: %v", err)
	}
	img := imaging.New(40, 40, color.NRGBA{B: 0xff, A: 0xff})
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%02d.png", i+1))
		if err := imaging.Save(img, path); err != nil {
			t.Fatalf("フィクスチャの保存に失敗したのだ: %v", err)
		}
	}
}

func testConfig(presetPath, inputDir, outDir string) *config.Config {
	return &config.Config{
		Preset:       config.DefaultPresetName,
		FitMode:      config.DefaultFitMode,
		PageBaseName: config.DefaultPageBaseName,
		Options: config.ComposeOptions{
			InputDir:  inputDir,
			Preset:    presetPath,
			OutputDir: outDir,
			FitMode:   config.DefaultFitMode,
			Workers:   1,
		},
	}
}

func pixelAt(t *testing.T, img image.Image, x, y int) color.NRGBA {
	t.Helper()
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestExecute(t *testing.T) {
	t.Run("3枚の画像が2セルのプリセットで2ページに保存されること", func(t *testing.T) {
		tmp := t.TempDir()
		inputDir := filepath.Join(tmp, "shots")
		writeTestImages(t, inputDir, 3)
		presetPath := writeTestPreset(t, tmp)
		outDir := filepath.Join(tmp, "out")

		if err := Execute(context.Background(), testConfig(presetPath, inputDir, outDir)); err != nil {
			t.Fatalf("Execute が失敗したのだ: %v", err)
		}

		entries, err := os.ReadDir(outDir)
		if err != nil {
			t.Fatalf("出力ディレクトリを読めないのだ: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("期待値: 2ファイル, 実際の値: %d", len(entries))
		}
		for _, entry := range entries {
			if !publisher.PageFileRegex.MatchString(entry.Name()) {
				t.Errorf("ページ画像の命名規則に一致しません: %s", entry.Name())
			}
			if !strings.HasPrefix(entry.Name(), "shots_") {
				t.Errorf("入力名が出力名に含まれていません: %s", entry.Name())
			}
		}

		// 2ページ目は1枚だけ配置され、2つ目のセルは背景のまま残る
		page2, err := imaging.Open(filepath.Join(outDir, entries[1].Name()))
		if err != nil {
			t.Fatalf("2ページ目を開けないのだ: %v", err)
		}
		if b := page2.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
			t.Errorf("期待値: 200x100, 実際の値: %dx%d", b.Dx(), b.Dy())
		}
		if got := pixelAt(t, page2, 30, 50); got != (color.NRGBA{B: 0xff, A: 0xff}) {
			t.Errorf("セル1の中心が画像色ではない: %+v", got)
		}
		if got := pixelAt(t, page2, 170, 50); got != (color.NRGBA{R: 0xff, A: 0xff}) {
			t.Errorf("セル2が背景色のまま残っていない: %+v", got)
		}
	})

	t.Run("入力ディレクトリが空の場合はInputErrorで失敗すること", func(t *testing.T) {
		tmp := t.TempDir()
		inputDir := filepath.Join(tmp, "empty")
		if err := os.MkdirAll(inputDir, 0o755); err != nil {
			t.Fatalf("入力ディレクトリの作成に失敗したのだ: %v", err)
		}
		presetPath := writeTestPreset(t, tmp)

		err := Execute(context.Background(), testConfig(presetPath, inputDir, filepath.Join(tmp, "out")))
		if !domain.IsInputError(err) {
			t.Fatalf("期待値: *InputError, 実際の値: %v", err)
		}
	})

	t.Run("存在しないプリセット名はConfigErrorで失敗すること", func(t *testing.T) {
		tmp := t.TempDir()
		inputDir := filepath.Join(tmp, "shots")
		writeTestImages(t, inputDir, 1)

		cfg := testConfig("no-such-preset", inputDir, filepath.Join(tmp, "out"))
		err := Execute(context.Background(), cfg)
		if !domain.IsConfigError(err) {
			t.Fatalf("期待値: *ConfigError, 実際の値: %v", err)
		}
	})
}

func TestExecutePlan(t *testing.T) {
	t.Run("ページ割りと各画像の寸法が表示されること", func(t *testing.T) {
		tmp := t.TempDir()
		inputDir := filepath.Join(tmp, "shots")
		writeTestImages(t, inputDir, 3)
		presetPath := writeTestPreset(t, tmp)

		var buf bytes.Buffer
		if err := ExecutePlan(context.Background(), testConfig(presetPath, inputDir, ""), &buf); err != nil {
			t.Fatalf("ExecutePlan が失敗したのだ: %v", err)
		}

		got := buf.String()
		for _, want := range []string{
			"3 枚 → 2 ページ",
			"最終ページは 1/2 セル",
			"ページ 2 セル 1",
			"(40x40)",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("出力に %q が含まれていません:\n%s", want, got)
			}
		}

		// 試算ではページ画像を一切書き出さない
		if _, err := os.Stat(filepath.Join(tmp, "out")); !os.IsNotExist(err) {
			t.Errorf("試算実行で出力ディレクトリが作られてしまったのだ")
		}
	})

	t.Run("壊れた画像があっても試算は続行すること", func(t *testing.T) {
		tmp := t.TempDir()
		inputDir := filepath.Join(tmp, "shots")
		writeTestImages(t, inputDir, 2)
		if err := os.WriteFile(filepath.Join(inputDir, "zz_broken.png"), []byte("画像ではないのだ"), 0o644); err != nil {
			t.Fatalf("フィクスチャの保存に失敗したのだ: %v", err)
		}
		presetPath := writeTestPreset(t, tmp)

		var buf bytes.Buffer
		if err := ExecutePlan(context.Background(), testConfig(presetPath, inputDir, ""), &buf); err != nil {
			t.Fatalf("ExecutePlan が失敗したのだ: %v", err)
		}
		if !strings.Contains(buf.String(), "寸法を読めません") {
			t.Errorf("壊れた画像のエラーが出力に含まれていません:\n%s", buf.String())
		}
	})
}

func TestSummarizeReport(t *testing.T) {
	okPage := domain.PageResult{Index: 0, Path: "p1.png", FilledCells: 2}
	failPage := domain.PageResult{
		Index: 1,
		Path:  "p2.png",
		Err:   &domain.OutputError{Page: 1, Path: "p2.png", Err: errors.New("disk full")},
	}

	t.Run("全ページ成功なら正常終了すること", func(t *testing.T) {
		report := &domain.Report{Pages: []domain.PageResult{okPage}}
		if err := summarizeReport(report); err != nil {
			t.Errorf("期待値: nil, 実際の値: %v", err)
		}
	})

	t.Run("一部のページの失敗は警告に留めること", func(t *testing.T) {
		report := &domain.Report{Pages: []domain.PageResult{okPage, failPage}}
		if err := summarizeReport(report); err != nil {
			t.Errorf("期待値: nil, 実際の値: %v", err)
		}
	})

	t.Run("全ページの書き出しに失敗した場合はエラーを返すこと", func(t *testing.T) {
		report := &domain.Report{Pages: []domain.PageResult{failPage}}
		if err := summarizeReport(report); err == nil {
			t.Error("期待値: エラー, 実際の値: nil")
		}
	})
}
