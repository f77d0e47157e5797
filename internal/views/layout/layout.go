// Package layout wraps page content in the shared HTML document shell.
package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func bodyWrapperClass(withSidebar bool) string {
	if withSidebar {
		return "app-shell with-sidebar"
	}
	return "app-shell"
}

func mainClass(withSidebar bool) string {
	if withSidebar {
		return "app-main"
	}
	return "app-main centered"
}

// Layout renders a full HTML document. sidebar may be nil.
func Layout(title string, sidebar, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		withSidebar := sidebar != nil
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="tr"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/assets/app.css"></head><body><div class="%s">`,
			templ.EscapeString(title), bodyWrapperClass(withSidebar)); err != nil {
			return err
		}
		if withSidebar {
			if err := sidebar.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<main class="%s">`, mainClass(withSidebar)); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></div></body></html>`)
		return err
	})
}
