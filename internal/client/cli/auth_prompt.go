package cli

import (
	"context"
	"fmt"
	"os"
)

type authView string

const (
	viewLogin  authView = "login"
	viewSignup authView = "signup"
)

// authPrompt owns the state of the interactive auth flow: which of the two
// views is active and whether the prompt is open. The two views are mutually
// exclusive and the user toggles between them.
type authPrompt struct {
	view authView
	open bool
}

func (p *authPrompt) openWith(v authView) {
	p.open = true
	p.view = v
}

func (p *authPrompt) toggle() {
	if p.view == viewLogin {
		p.view = viewSignup
	} else {
		p.view = viewLogin
	}
}

func (p *authPrompt) close() { p.open = false }

// Auth opens the auth prompt on the login view and runs it until a
// successful submit or an explicit cancel. A failed submit prints its error
// inline and leaves the prompt open; "switch" toggles between the login and
// signup views.
func (a *App) Auth(ctx context.Context) error {
	a.auth.openWith(viewLogin)

	for a.auth.open {
		choice, err := getSimpleText(a.reader,
			fmt.Sprintf("[%s] press Enter to continue, or type 'switch' / 'cancel'", a.auth.view),
			os.Stdout)
		if err != nil {
			a.auth.close()
			return err
		}

		switch choice {
		case "switch":
			a.auth.toggle()
			continue
		case "cancel":
			a.auth.close()
			return nil
		}

		var submitErr error
		if a.auth.view == viewLogin {
			submitErr = a.Login(ctx)
		} else {
			submitErr = a.Signup(ctx)
		}
		if submitErr == nil {
			a.auth.close()
		}
	}
	return nil
}
