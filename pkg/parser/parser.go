package parser

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

//go:embed presets/*.json
var presetFS embed.FS

// LoadPreset は名前またはファイルパスからレイアウトプリセットを読み込み、
// 検証済みの domain.LayoutPreset を返します。
// パス区切りか .json 拡張子を含む指定はファイルとして読み込み、
// それ以外は同梱プリセット名として解決します。
func LoadPreset(ctx context.Context, nameOrPath string) (*domain.LayoutPreset, error) {
	slog.InfoContext(ctx, "レイアウトプリセットを読み込んでいます", "preset", nameOrPath)

	if looksLikePath(nameOrPath) {
		return loadFromFile(nameOrPath)
	}
	return loadBundled(nameOrPath)
}

// Names は同梱プリセット名の一覧をソート済みで返します。
func Names() []string {
	entries, err := fs.ReadDir(presetFS, "presets")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Bundled は同梱プリセットの生の JSON を返します。presets コマンドの表示に使います。
func Bundled(name string) ([]byte, error) {
	data, err := presetFS.ReadFile("presets/" + name + ".json")
	if err != nil {
		return nil, unknownPresetError(name, err)
	}
	return data, nil
}

func looksLikePath(s string) bool {
	return strings.ContainsRune(s, '/') ||
		strings.ContainsRune(s, os.PathSeparator) ||
		strings.EqualFold(filepath.Ext(s), ".json")
}

func loadFromFile(path string) (*domain.LayoutPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{
			Issues: []string{fmt.Sprintf("プリセットファイルを読み込めません (path: %s)", path)},
			Err:    err,
		}
	}
	return domain.ParsePreset(data)
}

func loadBundled(name string) (*domain.LayoutPreset, error) {
	data, err := presetFS.ReadFile("presets/" + name + ".json")
	if err != nil {
		return nil, unknownPresetError(name, err)
	}
	return domain.ParsePreset(data)
}

// unknownPresetError は未知のプリセット名に対し、近い候補を添えた ConfigError を組み立てます。
func unknownPresetError(name string, err error) error {
	issues := []string{fmt.Sprintf("同梱プリセット %q が見つかりません", name)}
	if suggestions := suggest(name); len(suggestions) > 0 {
		issues = append(issues, fmt.Sprintf("もしかして: %s", strings.Join(suggestions, ", ")))
	}
	issues = append(issues, fmt.Sprintf("利用可能なプリセット: %s", strings.Join(Names(), ", ")))
	return &domain.ConfigError{Issues: issues, Err: err}
}

// suggest は入力名にあいまい一致する同梱プリセット名を近い順で返します。
func suggest(name string) []string {
	matches := fuzzy.Find(name, Names())
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
