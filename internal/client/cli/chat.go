package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/physicalai/companion/internal/client/models"
	"github.com/physicalai/companion/internal/common"
)

// Ask submits a question to the assistant. With no inline text the current
// draft (possibly seeded from a selection) is sent; when that is empty too,
// the user is prompted.
func (a *App) Ask(ctx context.Context, text string) error {
	if text == "" && a.chat.Draft() == "" {
		prompted, err := getSimpleText(a.reader, "Enter your question", os.Stdout)
		if err != nil {
			return err
		}
		text = prompted
	}
	if text != "" {
		a.chat.SetDraft(text)
	}

	reply, err := a.chat.Send(ctx)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBusy):
			printlnFn("Still waiting for the previous reply.")
		case errors.Is(err, common.ErrValidation):
			printlnFn("Nothing to send.")
		default:
			printlnFn("Send failed: " + err.Error())
		}
		return err
	}

	printlnFn("bot> " + reply.Text)
	return nil
}

// Select captures page text as the current selection; the draft is seeded
// with an "Explain this" prompt. Selections that are too short are ignored.
func (a *App) Select(ctx context.Context, text string) error {
	a.chat.Open(text)
	if draft := a.chat.Draft(); draft != "" {
		printlnFn("Draft: " + draft)
	} else {
		printlnFn("Selection too short, ignored.")
	}
	return nil
}

// Dismiss drops the current selection and any seeded draft.
func (a *App) Dismiss(ctx context.Context) error {
	a.chat.DismissSelection()
	return nil
}

// History prints the transcript.
func (a *App) History(ctx context.Context) error {
	msgs := a.chat.Messages()
	if len(msgs) == 0 {
		printlnFn("No messages yet.")
		return nil
	}
	for _, m := range msgs {
		prefix := "you> "
		if m.Sender == models.SenderBot {
			prefix = "bot> "
		}
		printlnFn(prefix + m.Text)
	}
	printlnFn(fmt.Sprintf("%d message(s)", len(msgs)))
	return nil
}

// ClearChat wipes the transcript, selection, and draft.
func (a *App) ClearChat(ctx context.Context) error {
	a.chat.Clear()
	printlnFn("Conversation cleared.")
	return nil
}
