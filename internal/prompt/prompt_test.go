package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

func TestStatic_RecordsQuestions(t *testing.T) {
	driver := Always()
	ok, err := driver.Confirm(context.Background(), ConfirmConfig{Message: "overwrite models.py?"})
	if err != nil || !ok {
		t.Fatalf("confirm = %v, %v", ok, err)
	}
	if err := driver.Info(context.Background(), "wrote models.py"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if diff := cmp.Diff([]string{"overwrite models.py?"}, driver.Asked()); diff != "" {
		t.Fatalf("asked mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"wrote models.py"}, driver.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	ok, err = Never().Confirm(context.Background(), ConfirmConfig{Message: "overwrite?"})
	if err != nil || ok {
		t.Fatalf("never confirm = %v, %v", ok, err)
	}
}

func TestStatic_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Always().Confirm(ctx, ConfirmConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSurvey_CancelledBeforePrompt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewSurvey().Confirm(ctx, ConfirmConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}
