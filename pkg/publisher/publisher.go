package publisher

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/shouni/go-utils/urlpath"
)

// OutputWriter はページ画像データを保存先へ書き込むためのインターフェースです。
type OutputWriter interface {
	Write(ctx context.Context, path string, data []byte) error
}

// FSWriter はローカルファイルシステムへ書き込む OutputWriter 実装です。
// 保存先のディレクトリは書き込み時に必要に応じて作成します。
type FSWriter struct{}

// NewFSWriter は FSWriter を生成します。
func NewFSWriter() *FSWriter {
	return &FSWriter{}
}

// Write は data を path へ書き込みます。親ディレクトリがなければ作成します。
func (w *FSWriter) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力ディレクトリの作成に失敗しました (%s): %w", dir, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PagePublisher は完成したページ画像を PNG として永続化します。
// ファイル名はベース名の拡張子の前に1始まりのページ番号を挿入した形です
// (例: mycomic_20260825_153000_page.png → mycomic_20260825_153000_page_1.png)。
type PagePublisher struct {
	writer   OutputWriter
	outDir   string
	baseName string
}

// NewPagePublisher は PagePublisher を生成します。
func NewPagePublisher(writer OutputWriter, outDir, baseName string) *PagePublisher {
	return &PagePublisher{
		writer:   writer,
		outDir:   outDir,
		baseName: baseName,
	}
}

// Publish はページ画像を PNG エンコードして保存し、保存先パスを返します。
// 書き込みに失敗した場合も、試行した保存先パスを合わせて返します。
func (p *PagePublisher) Publish(ctx context.Context, pageIndex int, page *image.NRGBA) (string, error) {
	name, err := urlpath.GenerateIndexedPath(p.baseName, pageIndex+1)
	if err != nil {
		return "", fmt.Errorf("ページファイル名の生成に失敗しました: %w", err)
	}
	fullPath, err := urlpath.ResolvePath(p.outDir, name)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, page, imaging.PNG); err != nil {
		return fullPath, fmt.Errorf("PNGエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, fullPath, buf.Bytes()); err != nil {
		return fullPath, err
	}

	slog.InfoContext(ctx, "ページ画像を保存しました",
		"path", fullPath, "size", humanize.IBytes(uint64(buf.Len())))
	return fullPath, nil
}
