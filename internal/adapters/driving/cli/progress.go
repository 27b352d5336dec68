package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// progressInterval bounds how often progress lines are written.
const progressInterval = 100 * time.Millisecond

// progressPrinter writes export progress to a terminal or a log stream.
// On a terminal the line is redrawn in place.
type progressPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	tty     bool
	limiter *rate.Limiter
	drawn   bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &progressPrinter{
		out:     w,
		tty:     tty,
		limiter: rate.NewLimiter(rate.Every(progressInterval), 1),
	}
}

// Report prints p. Intermediate updates are throttled, the final one never is.
func (p *progressPrinter) Report(pr domain.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pr.Percent < 100 && !p.limiter.Allow() {
		return
	}

	if p.tty {
		fmt.Fprintf(p.out, "\r\033[K[%3.0f%%] %s", pr.Percent, pr.Status)
		p.drawn = true
		return
	}
	fmt.Fprintf(p.out, "[%3.0f%%] %s\n", pr.Percent, pr.Status)
}

// Done ends a redrawn terminal line.
func (p *progressPrinter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tty && p.drawn {
		fmt.Fprintln(p.out)
		p.drawn = false
	}
}
