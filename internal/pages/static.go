package pages

import (
	"context"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/five82/shopfront/internal/router"
)

// Contact shows store contact details. The message form is drawn by the UI.
type Contact struct{}

// Render implements router.Page.
func (Contact) Render(_ context.Context, _ router.Request) router.View {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Contact Us"))
	b.WriteString("\n\n")
	b.WriteString("We'd love to hear from you. Send us a message and we'll respond as soon as possible.\n\n")
	for _, row := range [][2]string{
		{"Address", "123 Commerce Street, Business District, NY 10001"},
		{"Phone", "+1 (555) 123-4567"},
		{"Email", "support@shopfront.example"},
		{"Hours", "Mon-Fri 9am-6pm, Sat 10am-4pm"},
	} {
		b.WriteString(labelStyle.Render(row[0] + ": "))
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press enter to write a message."))
	return router.View{Title: "Contact", Markup: b.String()}
}

const aboutMarkdown = `# About Shopfront

Shopfront is a terminal storefront backed by the DummyJSON catalog.

## What you can do

- Browse and search the catalog
- Keep a cart for the length of your session
- Sign in with a demo account and review your profile
- Place mock orders

## Keys

| Key | Action |
| --- | --- |
| 1-8 | Jump to a section |
| backspace, [ | Back |
| ] | Forward |
| r | Reload |
| / | Search |
| T | Next theme |
| q | Quit |
`

// About renders the about text as markdown.
type About struct {
	deps Deps
}

// Render implements router.Page.
func (a *About) Render(_ context.Context, _ router.Request) router.View {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(a.deps.MarkdownStyle),
		glamour.WithWordWrap(a.deps.Width),
	)
	if err != nil {
		a.deps.Logger.Debug("markdown renderer unavailable")
		return router.View{Title: "About", Markup: aboutMarkdown}
	}
	out, err := renderer.Render(aboutMarkdown)
	if err != nil {
		return router.View{Title: "About", Markup: aboutMarkdown}
	}
	return router.View{Title: "About", Markup: strings.TrimRight(out, "\n")}
}
