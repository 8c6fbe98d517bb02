package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/dukerupert/vitrina/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// OrderConfirmation is the data for the order confirmation message.
type OrderConfirmation struct {
	Order    *domain.Order
	OrderURL string
}

func (e OrderConfirmation) Subject() string {
	return fmt.Sprintf("Order #%d confirmed", e.Order.ID)
}

type templates struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func loadTemplates() (*templates, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	return &templates{html: html, text: text}, nil
}

// render executes name.html and name.txt with data.
func (t *templates) render(name string, data any) (htmlBody, textBody string, err error) {
	var hb, tb bytes.Buffer
	if err := t.html.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %w", name, err)
	}
	if err := t.text.ExecuteTemplate(&tb, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %w", name, err)
	}
	return hb.String(), tb.String(), nil
}
