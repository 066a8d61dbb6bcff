package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/physicalai/companion/internal/client/api"
	"github.com/physicalai/companion/internal/client/content"
	"github.com/physicalai/companion/internal/client/models"
	"github.com/physicalai/companion/internal/common"
	"github.com/physicalai/companion/internal/logging"
)

// Seed prefix used when a page selection pre-fills the draft.
const explainPrefix = "Explain this: "

// Selections shorter than this are ignored when opening the widget.
const minSelectionLen = 10

const noAnswerFallback = "I couldn't generate a response. Please try again."

// ChatService manages one widget instance's transcript: an ordered,
// append-only sequence of messages, a selection buffer, and the draft input.
// At most one query is in flight at a time; a second send is rejected, not
// queued. All methods are safe for concurrent use.
type ChatService struct {
	client  api.Client
	logger  logging.Logger
	timeout time.Duration

	mu        sync.Mutex
	open      bool
	messages  []models.Message
	selection string
	draft     string
	inFlight  bool
	lastID    int64
}

// NewChatService constructs a ChatService. timeout bounds each send's
// network call; zero means 60 seconds.
func NewChatService(client api.Client, timeout time.Duration, logger logging.Logger) *ChatService {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &ChatService{
		client:  client,
		timeout: timeout,
		logger:  logger.With("component", "chat"),
	}
}

// Open opens the widget, capturing the page selection when it is long
// enough and seeding an empty draft with an "Explain this" prompt.
func (c *ChatService) Open(selection string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = true
	sel := strings.TrimSpace(selection)
	if len(sel) > minSelectionLen {
		c.selection = sel
		if c.draft == "" {
			c.draft = explainPrefix + sel
		}
	}
}

func (c *ChatService) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
}

func (c *ChatService) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// CaptureSelection updates the selection buffer (and seeds the draft when
// empty) while the widget is open. Short selections are ignored.
func (c *ChatService) CaptureSelection(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sel := strings.TrimSpace(text)
	if len(sel) <= minSelectionLen {
		return
	}
	c.selection = sel
	if c.open {
		c.draft = explainPrefix + sel
	}
}

// DismissSelection drops the selection buffer. A draft still carrying the
// seed prefix is cleared with it.
func (c *ChatService) DismissSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selection = ""
	if strings.HasPrefix(c.draft, explainPrefix) {
		c.draft = ""
	}
}

func (c *ChatService) Selection() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

func (c *ChatService) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

func (c *ChatService) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Messages returns a copy of the transcript.
func (c *ChatService) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Clear resets the transcript, selection buffer, and draft. Always
// available, never fails.
func (c *ChatService) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.selection = ""
	c.draft = ""
}

// nextID returns a creation-time-derived identifier, strictly increasing
// within the transcript.
func (c *ChatService) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// Send submits the current draft. The user message is appended
// optimistically and retained even when the query fails; the reply (or a
// classified diagnostic) is appended as the bot message and returned.
//
// A send is rejected with common.ErrBusy while another is in flight, and
// with common.ErrValidation when the trimmed draft is empty. Rejected sends
// leave the transcript untouched.
func (c *ChatService) Send(ctx context.Context) (models.Message, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return models.Message{}, fmt.Errorf("%w: wait for the current reply", common.ErrBusy)
	}

	text := c.draft
	query := content.SanitizeQuery(text)
	if query == "" {
		c.mu.Unlock()
		return models.Message{}, fmt.Errorf("%w: message is empty", common.ErrValidation)
	}

	var selected *string
	if c.selection != "" {
		s := content.SanitizeQuery(c.selection)
		selected = &s
	}

	c.messages = append(c.messages, models.Message{
		ID:     c.nextID(),
		Text:   strings.TrimSpace(text),
		Sender: models.SenderUser,
	})
	c.draft = ""
	c.selection = ""
	c.inFlight = true
	c.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	answer, err := c.client.Query(reqCtx, query, selected)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	var botText string
	if err != nil {
		c.logger.Warn(ctx, "query failed", "error", err.Error())
		botText = classifyQueryError(err)
	} else if answer == "" {
		botText = noAnswerFallback
	} else {
		botText = answer
	}

	bot := models.Message{ID: c.nextID(), Text: botText, Sender: models.SenderBot}
	c.messages = append(c.messages, bot)
	return bot, nil
}

// classifyQueryError maps a failed query to its diagnostic transcript text.
// This is a fixed lookup: the client never retries on its own.
func classifyQueryError(err error) string {
	const base = "Sorry, I encountered an error connecting to the backend. "

	var be *common.BackendError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return base + "The request timed out. The backend may be processing your request for too long. Please try a simpler question or wait a moment before trying again."

	case errors.Is(err, syscall.ECONNREFUSED):
		return base + "The backend server may not be running. Please ensure it is started and reachable at the configured address."

	case errors.As(err, &be):
		switch be.StatusCode {
		case 404:
			return base + "The API endpoint may not be available. Check if the backend server is running."
		case 504:
			return base + "The gateway timed out. The backend server may be overloaded or taking too long to respond. Please try again in a moment."
		case 500:
			return base + "The backend server encountered an error. Check the backend logs for details."
		}
		return base + "Details: " + err.Error()

	case isNetError(err):
		return base + "Network connection failed. Ensure the backend is running and accessible."
	}

	return base + "Details: " + err.Error()
}

func isNetError(err error) bool {
	var ne net.Error
	return errors.As(err, &ne)
}
