package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/physicalai/companion/internal/client/models"
	"github.com/physicalai/companion/internal/common"
)

// getSimpleText, getPassword, and getChoice are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getChoice     = GetChoice
)

// Login prompts for an email and password and authenticates through the
// session service. Bad credentials print the same generic message regardless
// of which part was wrong.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		printlnFn(loginFailureText(err))
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s", user.Email))
	return nil
}

// Signup walks the signup form: identity, password pair, then the profile
// selections used for personalization. Validation failures are printed
// inline the way the form shows them.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	background, err := getChoice(a.reader, "Select your background", []string{
		string(models.BackgroundSoftware),
		string(models.BackgroundHardware),
		string(models.BackgroundMixed),
		string(models.BackgroundBeginner),
	}, os.Stdout)
	if err != nil {
		return err
	}
	hardware, err := getChoice(a.reader, "Select your hardware", []string{
		string(models.HardwareJetson),
		string(models.HardwareLaptop),
		string(models.HardwareRaspberryPi),
		string(models.HardwareArduino),
		string(models.HardwareOther),
	}, os.Stdout)
	if err != nil {
		return err
	}
	experience, err := getChoice(a.reader, "Select your experience level", []string{
		string(models.ExperienceBeginner),
		string(models.ExperienceIntermediate),
		string(models.ExperienceAdvanced),
	}, os.Stdout)
	if err != nil {
		return err
	}
	language, err := getChoice(a.reader, "Select your preferred language", []string{
		string(models.LanguageEnglish),
		string(models.LanguageUrdu),
	}, os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Signup(ctx, models.SignupProfile{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		Hardware:        models.Hardware(hardware),
		Experience:      models.Experience(experience),
		Language:        models.Language(language),
		Background:      models.Background(background),
	})
	if err != nil {
		printlnFn(displayText(err, "Signup failed"))
		return err
	}

	printlnFn(fmt.Sprintf("Account created. Logged in as %s", user.Email))
	return nil
}

// Logout clears the persisted session. It prints nothing on the repeat case:
// logging out twice is fine.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current session record.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.Current()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	printlnFn(fmt.Sprintf("  background: %s, hardware: %s, experience: %s, language: %s",
		u.Background, u.Hardware, u.Experience, u.Language))
	return nil
}

func loginFailureText(err error) string {
	if errors.Is(err, common.ErrAuth) {
		return displayText(err, "Invalid email or password")
	}
	return "Login failed: " + err.Error()
}

// displayText extracts the user-facing part of a sentinel-wrapped error:
// everything after the sentinel's "<sentinel>: " prefix.
func displayText(err error, fallback string) string {
	for _, sentinel := range []error{common.ErrValidation, common.ErrAuth, common.ErrConflict} {
		if !errors.Is(err, sentinel) {
			continue
		}
		prefix := sentinel.Error() + ": "
		if msg, ok := strings.CutPrefix(err.Error(), prefix); ok {
			return msg
		}
	}
	if fallback != "" {
		return fallback + ": " + err.Error()
	}
	return err.Error()
}
