package payment

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory Provider for tests. It records calls and returns
// scripted results.
type Fake struct {
	mu            sync.Mutex
	CreateCalls   int
	CreateErr     error
	ConfirmStatus Status
	ConfirmErr    error
	Intents       map[string]*Intent
}

func NewFake() *Fake {
	return &Fake{
		ConfirmStatus: StatusSucceeded,
		Intents:       make(map[string]*Intent),
	}
}

func (f *Fake) CreateIntent(_ context.Context, amountCents int64, _ string, _ map[string]string) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	intent := &Intent{
		ID:           fmt.Sprintf("pi_fake_%d", f.CreateCalls),
		ClientSecret: fmt.Sprintf("pi_fake_%d_secret", f.CreateCalls),
		AmountCents:  amountCents,
		Status:       StatusRequiresPaymentMethod,
	}
	f.Intents[intent.ID] = intent
	return intent, nil
}

func (f *Fake) ConfirmResult(_ context.Context, intentID string) (Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ConfirmErr != nil {
		return "", f.ConfirmErr
	}
	if _, ok := f.Intents[intentID]; !ok {
		return "", fmt.Errorf("no such payment intent: %s", intentID)
	}
	return f.ConfirmStatus, nil
}
