package prompt

import (
	"context"
	"sync"
)

// Static answers every confirmation with a fixed value and records what was
// asked. It backs non-interactive runs (-yes) and tests.
type Static struct {
	Answer bool

	mu       sync.Mutex
	asked    []string
	messages []string
}

// Always returns a Static driver that answers yes to everything.
func Always() *Static {
	return &Static{Answer: true}
}

// Never returns a Static driver that answers no to everything.
func Never() *Static {
	return &Static{}
}

func (s *Static) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, cfg.Message)
	return s.Answer, nil
}

func (s *Static) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

// Asked lists the confirmation messages seen so far.
func (s *Static) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// Messages lists the Info messages seen so far.
func (s *Static) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

var _ Driver = (*Static)(nil)
