package publisher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultPageFileName はページ画像の共通のベースファイル名です。
	DefaultPageFileName = "page.png"

	// runStampLayout は出力名へ埋め込む実行時刻の書式です。
	runStampLayout = "20060102_150405"
)

// PageFileRegex はページ画像のファイル名 (xxx_page_1.png 等) に一致します
var PageFileRegex = createIndexedSuffixRegex(DefaultPageFileName)

// TimestampedBaseName は入力名・実行時刻・ベースファイル名からページ画像のベース名を組み立てます。
// 例: ("mycomic", 2026-08-25 15:30:00, "page.png") → "mycomic_20260825_153000_page.png"
func TimestampedBaseName(origin string, at time.Time, fileName string) string {
	return fmt.Sprintf("%s_%s_%s", origin, at.Format(runStampLayout), fileName)
}

// TimestampedOutputDir は入力名と実行時刻からデフォルトの出力ディレクトリ名を組み立てます。
// 例: ("mycomic", 2026-08-25 15:30:00) → "mycomic_20260825_153000"
func TimestampedOutputDir(origin string, at time.Time) string {
	return fmt.Sprintf("%s_%s", origin, at.Format(runStampLayout))
}

// createIndexedSuffixRegex は、ベースファイル名に連番を挿入したファイル名へ
// 末尾一致する正規表現を生成します。
// 例: "page.png" -> page_\d+\.png$
func createIndexedSuffixRegex(fileName string) *regexp.Regexp {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)

	// baseName と ext の両方を QuoteMeta でエスケープすることで
	// ドットや特殊文字が含まれていても正しくリテラルとしてマッチします。
	pattern := fmt.Sprintf(`%s_\d+%s$`, regexp.QuoteMeta(baseName), regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
