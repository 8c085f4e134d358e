package cli

import (
	"bufio"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/agbru/picalc/internal/orchestration"
)

const ctrlC = 0x03

// KeyPoller implements orchestration.CancelPoller: a background goroutine
// reads keys and Poll reports whether 'c', 'C' or Ctrl-C has been seen.
//
// The reader goroutine stays blocked on its last read once the run is over;
// it ends with the process.
type KeyPoller struct {
	fired atomic.Bool
}

var _ orchestration.CancelPoller = (*KeyPoller)(nil)

// NewKeyPoller starts reading r.
func NewKeyPoller(r io.Reader) *KeyPoller {
	p := &KeyPoller{}
	go p.read(bufio.NewReader(r))
	return p
}

func (p *KeyPoller) read(r io.ByteReader) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		if b == 'c' || b == 'C' || b == ctrlC {
			p.fired.Store(true)
			return
		}
	}
}

// Poll never blocks.
func (p *KeyPoller) Poll() bool {
	return p.fired.Load()
}

// EnableRawInput puts the terminal f in raw mode so single keypresses reach
// the KeyPoller without Enter. Raw mode also swallows Ctrl-C, which the
// poller handles itself. The returned function restores the terminal. When
// f is not a terminal it does nothing.
func EnableRawInput(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, err
	}
	return func() { _ = term.Restore(fd, state) }, nil
}
