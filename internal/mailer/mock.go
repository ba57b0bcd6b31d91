package mailer

import (
	"context"
	"sync"
)

// Mock records every message. FailFor makes Send fail for the listed
// recipients; Err fails every send.
type Mock struct {
	mu      sync.Mutex
	Sent    []Email
	Err     error
	FailFor map[string]error
}

func (m *Mock) Send(ctx context.Context, e Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, to := range e.To {
		if err, ok := m.FailFor[to]; ok {
			return err
		}
	}
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, e)
	return nil
}

func (m *Mock) Messages() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.Sent))
	copy(out, m.Sent)
	return out
}
