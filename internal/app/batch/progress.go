package batch

import (
	"io"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

const maxShownName = 32

// Progress renders one bar for a batch run. A nil or disabled Progress
// silently ignores every call.
type Progress struct {
	container *mpb.Progress
	bar       *mpb.Bar
	failed    atomic.Int64

	mu      sync.Mutex
	current string
}

// NewProgress returns a Progress writing to w, or nil when disabled
func NewProgress(w io.Writer, enabled bool) *Progress {
	if !enabled {
		return nil
	}
	if w == nil {
		w = os.Stderr
	}
	return &Progress{
		container: mpb.New(mpb.WithOutput(w), mpb.WithRefreshRate(150*time.Millisecond)),
	}
}

// Start adds the bar for total files
func (p *Progress) Start(total int) {
	if p == nil {
		return
	}
	p.bar = p.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Distilling ", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d/%d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Any(p.failures, decor.WCSyncSpace),
			decor.OnComplete(decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), "done"),
			decor.OnComplete(decor.Any(p.currentName, decor.WCSyncSpace), ""),
		),
	)
}

// Begin shows name as the file being distilled
func (p *Progress) Begin(name string) {
	if p == nil {
		return
	}
	if len(name) > maxShownName {
		name = "..." + name[len(name)-maxShownName+3:]
	}
	p.mu.Lock()
	p.current = name
	p.mu.Unlock()
}

// Done advances the bar for a file begun at start
func (p *Progress) Done(start time.Time, err error) {
	if p == nil || p.bar == nil {
		return
	}
	if err != nil {
		p.failed.Add(1)
	}
	p.bar.EwmaIncrement(time.Since(start))
}

// Finish completes the bar even when the run stopped early and waits for
// the final render
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	if p.bar != nil {
		p.bar.SetTotal(p.bar.Current(), true)
	}
	p.container.Wait()
}

func (p *Progress) failures(decor.Statistics) string {
	if n := p.failed.Load(); n > 0 {
		return "failed " + strconv.FormatInt(n, 10)
	}
	return ""
}

func (p *Progress) currentName(decor.Statistics) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// ShouldShowProgress enables bars when forced or when stderr is a terminal
func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}
	info, err := os.Stderr.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
