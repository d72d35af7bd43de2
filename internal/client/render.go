package client

import (
	"fmt"
	"io"
	"strings"

	"cardinal-portal/internal/domain"
)

// Card is one rendered portal entry.
type Card struct {
	Title       string
	Description string
	Icon        string
	URL         string
	DisplayURL  string
	Status      ProbeStatus
}

// BuildCards filters the document to enabled links and produces one card per
// link. Source order is significant and preserved; disabled links are
// dropped entirely.
func BuildCards(doc *domain.PortalDocument) []Card {
	cards := make([]Card, 0, len(doc.Links))
	for _, link := range doc.Links {
		if !link.Enabled {
			continue
		}
		cards = append(cards, Card{
			Title:       link.Title,
			Description: link.Description,
			Icon:        link.Icon,
			URL:         link.URL,
			DisplayURL:  link.DisplayURL,
			Status:      StatusChecking,
		})
	}
	return cards
}

// RenderText writes a plain-text dashboard: portal header, one block per
// card with its status badge, and a footer with the service count.
func RenderText(w io.Writer, doc *domain.PortalDocument, cards []Card) {
	title := strings.ToUpper(doc.Portal.Title)
	if doc.Portal.Subtitle != "" {
		title += " - " + doc.Portal.Subtitle
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))

	for _, card := range cards {
		fmt.Fprintf(w, "\n%s %s [%s]\n", card.Icon, card.Title, badge(card.Status))
		if card.Description != "" {
			fmt.Fprintf(w, "  %s\n", card.Description)
		}
		fmt.Fprintf(w, "  %s\n", card.DisplayURL)
	}

	fmt.Fprintf(w, "\nVersion %s | %d services available\n", doc.Portal.Version, len(cards))
}

func badge(status ProbeStatus) string {
	switch status {
	case StatusOnline:
		return "ONLINE"
	case StatusOffline:
		return "OFFLINE"
	default:
		return "CHECKING"
	}
}
