package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

type NoopObserver struct{}

func (NoopObserver) Publish(Snapshot) {}
func (NoopObserver) Done(Snapshot)    {}

type ObserverFunc func(Snapshot)

func (f ObserverFunc) Publish(s Snapshot) { f(s) }
func (ObserverFunc) Done(Snapshot)        {}

// ShouldShowProgress は --progress / --no-progress と端末状態から表示可否を決めます。
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTTY(os.Stderr)
}

type ttyObserver struct {
	w  io.Writer
	mu sync.Mutex
}

type lineObserver struct {
	w  io.Writer
	mu sync.Mutex
}

// NewAutoObserver は端末なら 1 行を上書きし、それ以外では行単位で出力します。
func NewAutoObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	if f, ok := w.(*os.File); ok && isTTY(f) {
		return &ttyObserver{w: w}
	}
	return &lineObserver{w: w}
}

func (o *ttyObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintf(o.w, "\r\033[K%s", renderTTY(s))
}

func (o *ttyObserver) Done(Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprint(o.w, "\r\033[K")
}

func (o *lineObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintln(o.w, renderLine(s))
}

func (o *lineObserver) Done(Snapshot) {}

func renderTTY(s Snapshot) string {
	rate := "--/s"
	eta := "--:--:--"
	if !s.Warmup {
		if s.Rate > 0 {
			rate = fmt.Sprintf("%.1f/s", s.Rate)
		}
		if s.ETA > 0 {
			eta = formatETA(s.ETA)
		}
	}
	return fmt.Sprintf("[%s] %3d%% %d/%d files %s %s ETA %s", s.Stage, percent(s.Done, s.Total), s.Done, s.Total, plural(s.Hits, "hit"), rate, eta)
}

func renderLine(s Snapshot) string {
	eta := -1.0
	if s.ETA > 0 {
		eta = s.ETA.Seconds()
	}
	return fmt.Sprintf("progress stage=%s total=%d done=%d hits=%d skipped=%d rate=%.3f eta=%g warmup=%t updated_at=%s",
		s.Stage, s.Total, s.Done, s.Hits, s.Skipped, s.Rate, eta, s.Warmup, s.UpdatedAt.Format(time.RFC3339Nano))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatETA(d time.Duration) string {
	totalSeconds := int(math.Round(d.Seconds()))
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	if hours > 99 {
		hours = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, (totalSeconds%3600)/60, totalSeconds%60)
}

func percent(a, b int) int {
	if b <= 0 {
		if a <= 0 {
			return 0
		}
		return 100
	}
	if a <= 0 {
		return 0
	}
	p := a * 100 / b
	if p > 100 {
		return 100
	}
	return p
}

func isTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
