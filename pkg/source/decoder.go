package source

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/patrickmn/go-cache"

	// imaging が登録しない webp のデコーダを有効にします。
	_ "golang.org/x/image/webp"
)

// Decoder は画像ファイルを読み込み、EXIF の回転情報を正規化した image.Image を返します。
// アルファチャンネルは読み込み後も保持されます。
type Decoder struct {
	cache    *cache.Cache
	cacheTTL time.Duration
}

// NewDecoder は毎回ファイルから読み込む素のデコーダを生成します。
func NewDecoder() *Decoder {
	return &Decoder{}
}

// NewCachedDecoder はデコード結果をメモリ内キャッシュへ保持するデコーダを生成します。
// リストファイル経由で同一パスが複数セルに現れる場合の再デコードを回避します。
func NewCachedDecoder(imgCache *cache.Cache, ttl time.Duration) *Decoder {
	return &Decoder{cache: imgCache, cacheTTL: ttl}
}

// Decode は path の画像ファイルを読み込みます。
func (d *Decoder) Decode(ctx context.Context, path string) (image.Image, error) {
	if d.cache != nil {
		if hit, ok := d.cache.Get(path); ok {
			slog.DebugContext(ctx, "デコード済み画像をキャッシュから再利用します", "path", path)
			return hit.(image.Image), nil
		}
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		d.cache.Set(path, img, d.cacheTTL)
	}
	return img, nil
}
