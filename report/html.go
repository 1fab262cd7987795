// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package report

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// WriteHTML writes findings as a standalone HTML page.
func WriteHTML(ctx context.Context, w io.Writer, findings []Finding) error {
	return page(findings).Render(ctx, w)
}

const style = `body{font-family:system-ui,sans-serif;margin:2rem;}
table{border-collapse:collapse;}
td,th{border:1px solid #ccc;padding:.3rem .6rem;text-align:left;vertical-align:top;}
pre{margin:0;}`

func page(findings []Finding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>License header report</title>\n<style>"+style+"</style>\n</head>\n<body>\n"); err != nil {
			return err
		}
		if err := summary(len(findings)).Render(ctx, w); err != nil {
			return err
		}
		if len(findings) > 0 {
			if _, err := io.WriteString(w, "<table>\n<tr><th>File</th><th>Line</th><th>Distance</th><th>Message</th></tr>\n"); err != nil {
				return err
			}
			for _, f := range findings {
				if err := row(f).Render(ctx, w); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</table>\n"); err != nil {
				return err
			}
			if err := help(findings[0].Help).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

func summary(n int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var msg string
		switch n {
		case 0:
			msg = "All files have the license header."
		case 1:
			msg = "1 file is missing the license header."
		default:
			msg = fmt.Sprintf("%d files are missing the license header.", n)
		}
		_, err := fmt.Fprintf(w, "<h1>License header report</h1>\n<p>%s</p>\n", templ.EscapeString(msg))
		return err
	})
}

func row(f Finding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<tr><td>%s</td><td>%d:%d</td><td>%d / %d</td><td>%s</td></tr>\n",
			templ.EscapeString(f.File), f.Line, f.Column, f.Distance, f.Tolerance, templ.EscapeString(f.Message))
		return err
	})
}

func help(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<pre>%s</pre>\n", templ.EscapeString(text))
		return err
	})
}
