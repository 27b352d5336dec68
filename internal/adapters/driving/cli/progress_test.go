package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

func TestProgressPrinter_ThrottlesIntermediate(t *testing.T) {
	buf := new(bytes.Buffer)
	p := newProgressPrinter(buf)

	p.Report(domain.Progress{Percent: 10, Status: "1/10 Exporting layers..."})
	p.Report(domain.Progress{Percent: 20, Status: "2/10 Exporting layers..."})
	p.Report(domain.Progress{Percent: 100, Status: "Packaging archive..."})
	p.Done()

	out := buf.String()
	assert.Contains(t, out, "[ 10%] 1/10 Exporting layers...\n")
	assert.NotContains(t, out, "2/10")
	assert.Contains(t, out, "[100%] Packaging archive...\n")
}

func TestProgressPrinter_NotATerminal(t *testing.T) {
	p := newProgressPrinter(new(bytes.Buffer))

	assert.False(t, p.tty)
}
