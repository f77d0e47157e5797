package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"kitchenos/internal/views/layout"
)

// Login renders the full sign-in page.
func Login(message, email string) templ.Component {
	return layout.Layout("Giris", nil, LoginPartial(message, email))
}

// LoginPartial renders only the sign-in form, for partial page swaps.
func LoginPartial(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="login" id="login"><h1>Giris yap</h1>`); err != nil {
			return err
		}
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="alert" role="alert">%s</p>`, templ.EscapeString(message)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="/login"><label>E-posta <input type="email" name="email" value="%s" required></label><label>Sifre <input type="password" name="password" required></label><button type="submit">Giris</button></form></section>`,
			templ.EscapeString(email))
		return err
	})
}
