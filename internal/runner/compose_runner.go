package runner

import (
	"context"

	"github.com/shouni/go-comic-kit/pkg/compositor"
	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/source"
)

// ComposeRunner はページ合成処理のインターフェースです。
type ComposeRunner interface {
	Run(ctx context.Context, refs []source.ImageRef) (*domain.Report, error)
}

// PageComposeRunner は pkg/compositor と pkg/publisher を束ねた標準実装です。
// 合成されたページは完成し次第シンクへ流れ、メモリに溜め込みません。
type PageComposeRunner struct {
	compositor *compositor.Compositor
	sink       compositor.PageSink
}

func NewPageComposeRunner(comp *compositor.Compositor, sink compositor.PageSink) *PageComposeRunner {
	return &PageComposeRunner{
		compositor: comp,
		sink:       sink,
	}
}

func (cr *PageComposeRunner) Run(ctx context.Context, refs []source.ImageRef) (*domain.Report, error) {
	return cr.compositor.Compose(ctx, refs, cr.sink)
}
