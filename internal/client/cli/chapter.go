package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/physicalai/companion/internal/client/content"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// LoadChapter reads a chapter from disk and makes it the active chapter.
// HTML files are reduced to their readable text first. Loading a chapter
// discards any personalize/translate override from the previous one.
func (a *App) LoadChapter(ctx context.Context, path string) error {
	data, err := readFile(path)
	if err != nil {
		printlnFn("Cannot read chapter: " + err.Error())
		return err
	}

	text := string(data)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		text, err = content.FromHTML(text)
		if err != nil {
			printlnFn("Cannot parse chapter: " + err.Error())
			return err
		}
	}

	a.chapterText = text
	a.chapterTitle = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	a.chapter.Reset()

	printlnFn(fmt.Sprintf("Loaded %q (%d characters)", a.chapterTitle, len(text)))
	return nil
}

// Personalize rewrites the active chapter for the logged-in reader's
// background and shows the result.
func (a *App) Personalize(ctx context.Context) error {
	if a.chapterText == "" {
		printlnFn("No chapter loaded. Use: load <path>")
		return nil
	}

	got, err := a.chapter.Personalize(ctx, a.chapterText, a.chapterTitle)
	if err != nil {
		printlnFn(displayText(err, "Personalization failed"))
		return err
	}

	printlnFn("Personalized. Use 'show' to read it, 'reset' to go back.")
	printlnFn(preview(got))
	return nil
}

// Translate produces the Urdu rendition of the active chapter and shows it.
func (a *App) Translate(ctx context.Context) error {
	if a.chapterText == "" {
		printlnFn("No chapter loaded. Use: load <path>")
		return nil
	}

	got, err := a.chapter.TranslateUrdu(ctx, a.chapterText, a.chapterTitle)
	if err != nil {
		printlnFn(displayText(err, "Translation failed"))
		return err
	}

	printlnFn("Translated. Use 'show' to read it, 'reset' to go back.")
	printlnFn(preview(got))
	return nil
}

// ResetChapter restores the original chapter content.
func (a *App) ResetChapter(ctx context.Context) error {
	a.chapter.Reset()
	printlnFn("Showing original content.")
	return nil
}

// ShowChapter prints the active chapter: the override when one is in
// effect, the original text otherwise.
func (a *App) ShowChapter(ctx context.Context) error {
	if a.chapterText == "" {
		printlnFn("No chapter loaded. Use: load <path>")
		return nil
	}

	if override, ok := a.chapter.Override(); ok {
		printlnFn(override)
		return nil
	}
	printlnFn(a.chapterText)
	return nil
}

func preview(s string) string {
	const max = 300
	if cut := content.Truncate(s, max); cut != s {
		return cut + "…"
	}
	return s
}
