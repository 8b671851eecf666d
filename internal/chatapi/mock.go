package chatapi

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un backend real.
type MockClient struct {
	Result Result

	// Gate, si no es nil, bloquea Send hasta que se cierre o se cancele el contexto.
	Gate    chan struct{}
	Started chan struct{}

	mu       sync.Mutex
	requests []Request
}

func (m *MockClient) Send(ctx context.Context, req Request) Result {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.Started != nil {
		m.Started <- struct{}{}
	}
	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return NetworkFailure(ctx.Err())
		}
	}
	return m.Result
}

// Requests devuelve una copia de las requests recibidas.
func (m *MockClient) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}
