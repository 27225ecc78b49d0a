package publisher

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func TestFSWriter_Write(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// 存在しない中間ディレクトリごと作成されること
	path := filepath.Join(dir, "nested", "deep", "page_1.png")
	if err := NewFSWriter().Write(ctx, path, []byte("data")); err != nil {
		t.Fatalf("書き込みに失敗しました: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("書き込んだファイルを読めません: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("期待値 'data', 実際の値 '%s'", got)
	}
}

func TestPagePublisher_Publish(t *testing.T) {
	ctx := context.Background()
	outDir := filepath.Join(t.TempDir(), "out")
	pub := NewPagePublisher(NewFSWriter(), outDir, "mycomic_20260825_153000_page.png")

	page := imaging.New(30, 20, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})

	savedPath, err := pub.Publish(ctx, 0, page)
	if err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}

	t.Run("ファイル名に1始まりのページ番号が入ること", func(t *testing.T) {
		want := filepath.Join(outDir, "mycomic_20260825_153000_page_1.png")
		if savedPath != want {
			t.Errorf("期待値 '%s', 実際の値 '%s'", want, savedPath)
		}
		if !PageFileRegex.MatchString(filepath.Base(savedPath)) {
			t.Errorf("生成名が PageFileRegex に一致しません: %s", savedPath)
		}
	})

	t.Run("PNGとして読み戻せること", func(t *testing.T) {
		loaded, err := imaging.Open(savedPath)
		if err != nil {
			t.Fatalf("保存したページを開けません: %v", err)
		}
		if loaded.Bounds().Dx() != 30 || loaded.Bounds().Dy() != 20 {
			t.Errorf("期待値 30x20, 実際の値 %dx%d", loaded.Bounds().Dx(), loaded.Bounds().Dy())
		}
	})
}

// brokenWriter は常に書き込みへ失敗するテスト用の OutputWriter です。
type brokenWriter struct{}

func (brokenWriter) Write(context.Context, string, []byte) error {
	return errors.New("書き込み先が読み取り専用です")
}

func TestPagePublisher_Publish_WriteFailure(t *testing.T) {
	pub := NewPagePublisher(brokenWriter{}, "out", "page.png")
	page := imaging.New(4, 4, color.NRGBA{A: 0xff})

	path, err := pub.Publish(context.Background(), 2, page)
	if err == nil {
		t.Fatal("書き込み失敗でエラーが発生しませんでした")
	}
	// 失敗しても試行先のパスは報告されること
	if !strings.HasSuffix(path, "page_3.png") {
		t.Errorf("試行パスが不正です: %s", path)
	}
}

func TestTimestampedNames(t *testing.T) {
	at := time.Date(2026, 8, 25, 15, 30, 0, 0, time.UTC)

	if got := TimestampedBaseName("mycomic", at, DefaultPageFileName); got != "mycomic_20260825_153000_page.png" {
		t.Errorf("期待値 'mycomic_20260825_153000_page.png', 実際の値 '%s'", got)
	}
	if got := TimestampedOutputDir("mycomic", at); got != "mycomic_20260825_153000" {
		t.Errorf("期待値 'mycomic_20260825_153000', 実際の値 '%s'", got)
	}
}

func TestPageFileRegex(t *testing.T) {
	matches := []string{"page_1.png", "mycomic_20260825_153000_page_12.png"}
	for _, name := range matches {
		if !PageFileRegex.MatchString(name) {
			t.Errorf("%q は一致するはずです", name)
		}
	}

	rejects := []string{"page.png", "page_x.png", "page_1.jpg"}
	for _, name := range rejects {
		if PageFileRegex.MatchString(name) {
			t.Errorf("%q は一致しないはずです", name)
		}
	}
}
