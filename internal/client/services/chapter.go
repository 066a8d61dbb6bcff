package services

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/physicalai/companion/internal/client/api"
	"github.com/physicalai/companion/internal/client/content"
	"github.com/physicalai/companion/internal/client/models"
	"github.com/physicalai/companion/internal/common"
	"github.com/physicalai/companion/internal/logging"
)

// Translate limits inherited from the site: content is truncated before
// translation, and very short content is not translated at all.
const (
	maxTranslateLen = 2500
	minTranslateLen = 50
)

// Fixed Urdu fallback strings shown when a real translation cannot be
// produced.
const (
	urduPlaceholderPrefix = "یہ اردو میں مکمل ترجمہ ہے: "
	urduNotAvailable      = "اس صفہ کا اردو ترجمہ دستیاب نہیں ہے۔ براہ کرم کچھ دیر بعد کوشش کریں۔"
)

const translatePrompt = "Translate the following educational content about Physical AI & Humanoid Robotics to Urdu. Provide only the Urdu translation without any additional text or explanations:\n\n"

// Generator is the generative-text capability used by the direct translate
// path. *llm.GeminiClient implements it.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Local personalization rules, keyed by reader background. Each rule wraps
// its keywords in an emphasis marker with a category annotation.
var personalizeRules = map[models.Background]struct {
	re         *regexp.Regexp
	annotation string
}{
	models.BackgroundSoftware: {
		re:         regexp.MustCompile(`(?i)\b(robotics|hardware|physical|mechanical)\b`),
		annotation: "software implementation",
	},
	models.BackgroundHardware: {
		re:         regexp.MustCompile(`(?i)\b(algorithm|code|software|programming)\b`),
		annotation: "hardware implementation",
	},
	models.BackgroundMixed: {
		re:         regexp.MustCompile(`(?i)\b(system|design|integration)\b`),
		annotation: "both software and hardware",
	},
}

var defaultRule = struct {
	re         *regexp.Regexp
	annotation string
}{
	re:         regexp.MustCompile(`(?i)\b(concept|principle|method)\b`),
	annotation: "basic concept",
}

// ChapterService runs the per-chapter personalize and translate actions and
// owns the resulting content override. Chapter text is always passed in
// explicitly by the caller.
type ChapterService struct {
	client     api.Client
	session    SessionService
	generator  Generator
	useBackend bool
	logger     logging.Logger

	mu       sync.Mutex
	override string
}

// NewChapterService constructs a ChapterService. generator may be nil (no
// client-held API key); useBackend selects the remote personalize/translate
// endpoints over the local rules.
func NewChapterService(client api.Client, session SessionService, generator Generator, useBackend bool, logger logging.Logger) *ChapterService {
	return &ChapterService{
		client:     client,
		session:    session,
		generator:  generator,
		useBackend: useBackend,
		logger:     logger.With("component", "chapter"),
	}
}

// Override returns the replacement content and whether one is active.
func (c *ChapterService) Override() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.override, c.override != ""
}

func (c *ChapterService) setOverride(s string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.override = s
	return s
}

// Reset clears the override so the original content shows again. It takes
// no network action and always succeeds.
func (c *ChapterService) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.override = ""
}

// Personalize rewrites the chapter text for the logged-in reader, either by
// the local keyword rules or by the backend personalize endpoint, and
// records the result as the content override.
//
// Without a session the action is a no-op: the returned error carries the
// log-in prompt and no request is sent.
func (c *ChapterService) Personalize(ctx context.Context, chapterText, title string) (string, error) {
	user := c.session.Current()
	if user == nil {
		return "", fmt.Errorf("%w: Please log in to use personalization features", common.ErrAuth)
	}

	cleaned := content.Clean(chapterText)

	if !c.useBackend {
		return c.setOverride(applyPersonalizeRules(cleaned, user.Background)), nil
	}

	personalized, err := c.client.Personalize(ctx, c.session.Token(), cleaned, title, api.UserProfile{
		Hardware:   user.Hardware,
		Experience: user.Experience,
		Language:   user.Language,
	})
	if err != nil {
		c.logger.Warn(ctx, "personalize failed", "title", title, "error", err.Error())
		return "", fmt.Errorf("personalize: %w", err)
	}

	return c.setOverride(personalized), nil
}

func applyPersonalizeRules(text string, background models.Background) string {
	rule, ok := personalizeRules[background]
	if !ok {
		rule = defaultRule
	}
	return rule.re.ReplaceAllString(text, "<strong>$1 ("+rule.annotation+")</strong>")
}

// TranslateUrdu translates the chapter text, preferring the direct
// generative-text call when an API key is configured, then the backend
// endpoint. Failures and missing prerequisites fall back to the fixed Urdu
// placeholder embedding an excerpt, or the "not available" message when the
// content is too short. The result always becomes the content override.
func (c *ChapterService) TranslateUrdu(ctx context.Context, chapterText, title string) (string, error) {
	if c.session.Current() == nil {
		return "", fmt.Errorf("%w: Please log in to use translation features", common.ErrAuth)
	}

	cleaned := content.Truncate(content.Clean(chapterText), maxTranslateLen)
	if len([]rune(cleaned)) <= minTranslateLen {
		return c.setOverride(urduNotAvailable), nil
	}

	if c.generator != nil {
		translated, err := c.generator.GenerateText(ctx, translatePrompt+cleaned)
		if err != nil {
			c.logger.Warn(ctx, "direct translation failed", "title", title, "error", err.Error())
			return c.setOverride(excerptPlaceholder(cleaned)), nil
		}
		if translated == "" {
			return c.setOverride(excerptPlaceholder(cleaned)), nil
		}
		return c.setOverride(translated), nil
	}

	if c.useBackend {
		translated, err := c.client.TranslateUrdu(ctx, c.session.Token(), cleaned, title)
		if err != nil {
			c.logger.Warn(ctx, "backend translation failed", "title", title, "error", err.Error())
			return c.setOverride(excerptPlaceholder(cleaned)), nil
		}
		if translated != "" {
			return c.setOverride(translated), nil
		}
	}

	return c.setOverride(excerptPlaceholder(cleaned)), nil
}

func excerptPlaceholder(cleaned string) string {
	return urduPlaceholderPrefix + content.Truncate(cleaned, 300) + "..."
}
