package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// bus forwards messages from timer and fetch goroutines into the program.
// Messages sent before a program is attached are dropped.
type bus struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// attach routes messages to p. Sends happen on their own goroutine since
// controllers call back from inside Update, where a direct p.Send would
// block the event loop.
func (b *bus) attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = func(msg tea.Msg) { go p.Send(msg) }
}

func (b *bus) Send(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send != nil {
		send(msg)
	}
}
