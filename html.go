package asciify

import (
	"html"
	"regexp"
	"strings"

	"github.com/muesli/termenv"
)

// HTMLProfile renders color spans with colors quantized to a terminal
// profile, so an HTML preview matches what the terminal shows. ANSI and
// ANSI256 colors print as the palette's hex value; the Ascii profile
// drops color entirely. TrueColor keeps each cell's CSS form.
func (r *Result) HTMLProfile(profile termenv.Profile) string {
	cssColor := func(c Color) string {
		if profile == termenv.TrueColor {
			return c.CSS()
		}
		switch v := profile.Color(c.Hex()).(type) {
		case termenv.ANSIColor:
			return ANSI256Hex[int(v)]
		case termenv.ANSI256Color:
			return ANSI256Hex[int(v)]
		case termenv.RGBColor:
			return strings.ToUpper(string(v))
		}
		return ""
	}

	var sb strings.Builder
	for y, row := range r.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		eachRun(row, cssColor, func(css string, glyphs []rune) {
			text := html.EscapeString(string(glyphs))
			if css == "" {
				sb.WriteString(text)
				return
			}
			sb.WriteString(`<span style="color: `)
			sb.WriteString(css)
			sb.WriteString(`;">`)
			sb.WriteString(text)
			sb.WriteString("</span>")
		})
	}
	return sb.String()
}

var markupTag = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes tags and decodes entities, recovering the plain
// text of HTML output.
func StripMarkup(s string) string {
	return html.UnescapeString(markupTag.ReplaceAllString(s, ""))
}

// EmailHTML wraps the HTML rendering in a self-contained, inline-styled
// <pre> block that survives mail clients. Colored art gets a black
// background.
func EmailHTML(r *Result) string {
	style := "font-family: 'Courier New', Courier, monospace; font-size: 10px; line-height: 1.1; white-space: pre; margin: 0; padding: 12px;"
	if r.colorized() {
		style += " background-color: #000000; color: #FFFFFF;"
	} else {
		style += " background-color: #FFFFFF; color: #000000;"
	}
	var sb strings.Builder
	sb.WriteString(`<pre style="`)
	sb.WriteString(style)
	sb.WriteString(`">`)
	sb.WriteString(r.HTML())
	sb.WriteString("</pre>")
	return sb.String()
}

// MessageText wraps the plain text in a code fence for chat apps.
func MessageText(r *Result) string {
	return "```\n" + r.PlainText() + "\n```"
}
