package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

// ImageRef は合成対象となる入力画像1枚への参照です。
type ImageRef struct {
	Path string
}

// Source は順序付きの入力画像列を解決するインターフェースです。
// List が返す順序がそのままページ上の配置順になります。
type Source interface {
	List(ctx context.Context) ([]ImageRef, error)

	// Origin は出力ディレクトリ名やページファイル名の元になる入力側の名前を返します。
	Origin() string
}

// imageExtensions は列挙対象とする拡張子です。大文字小文字は区別しません。
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// DirSource はディレクトリを1階層だけ走査して画像を収集します。
// 並び順はファイル名のバイト順で、同じ内容のディレクトリからは常に同じ列が得られます。
type DirSource struct {
	dir string
}

// NewDirSource は指定ディレクトリを走査する DirSource を生成します。
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Origin は入力ディレクトリのフォルダ名を返します。
func (s *DirSource) Origin() string {
	return filepath.Base(filepath.Clean(s.dir))
}

// List はディレクトリ直下の画像ファイルをファイル名順で返します。
// ディレクトリが存在しない、または対象画像が1枚もない場合は *InputError を返します。
func (s *DirSource) List(ctx context.Context) ([]ImageRef, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &domain.InputError{Path: s.dir, Err: err}
	}

	// os.ReadDir はファイル名順に整列済みのため、ここでの追加ソートは不要です
	var refs []ImageRef
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		refs = append(refs, ImageRef{Path: filepath.Join(s.dir, entry.Name())})
	}

	if len(refs) == 0 {
		return nil, &domain.InputError{Path: s.dir, Err: fmt.Errorf("対象の画像ファイルが見つかりませんでした")}
	}

	slog.InfoContext(ctx, "画像ファイルを列挙しました", "dir", s.dir, "count", len(refs))
	return refs, nil
}

// ListSource は順序指定ファイル（1行1パス）から画像列を読み込みます。
// 行順をそのまま保持するため、ファイル名に依存しない任意の並びを指定できます。
type ListSource struct {
	path string
}

// NewListSource は指定のリストファイルを読む ListSource を生成します。
func NewListSource(path string) *ListSource {
	return &ListSource{path: path}
}

// Origin はリストファイル名から拡張子を除いた名前を返します。
func (s *ListSource) Origin() string {
	base := filepath.Base(filepath.Clean(s.path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// List はリストファイルの記載順で画像参照を返します。
// 空行と # で始まる行は無視し、相対パスはリストファイルの場所を基準に解決します。
func (s *ListSource) List(ctx context.Context) ([]ImageRef, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.InputError{Path: s.path, Err: err}
	}

	baseDir := filepath.Dir(s.path)
	var refs []ImageRef
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(baseDir, line)
		}
		refs = append(refs, ImageRef{Path: line})
	}

	if len(refs) == 0 {
		return nil, &domain.InputError{Path: s.path, Err: fmt.Errorf("リストに画像パスが1件も含まれていません")}
	}

	slog.InfoContext(ctx, "リストファイルを読み込みました", "path", s.path, "count", len(refs))
	return refs, nil
}
