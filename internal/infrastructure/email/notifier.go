package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/ports"
)

// Notifier delivers run digests over SMTP with STARTTLS and plain auth.
type Notifier struct {
	host     string
	port     int
	from     string
	password string
	to       string
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the SMTP endpoint and credentials.
func NewNotifier(host string, port int, from, password, to string) *Notifier {
	return &Notifier{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		to:       to,
	}
}

// Notify composes and sends one plain-text message for the run's matches.
// No message is sent when there are no matches.
func (n *Notifier) Notify(ctx context.Context, matches []domain.Listing, criteria domain.Criteria) error {
	if len(matches) == 0 {
		return nil
	}
	if n.host == "" || n.from == "" || n.to == "" {
		return fmt.Errorf("email notifier misconfigured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", n.to)
	fmt.Fprintf(&msg, "Subject: Listing Alert: %d New Matching Listing(s) Found\r\n", len(matches))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(BuildDigest(matches, criteria))

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	auth := smtp.PlainAuth("", n.from, n.password, n.host)

	if err := smtp.SendMail(addr, auth, n.from, []string{n.to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

// BuildDigest renders the plain-text body of a notification message.
func BuildDigest(matches []domain.Listing, criteria domain.Criteria) string {
	var b strings.Builder

	b.WriteString("New listings matching your criteria have been found:\n\n")
	for i, listing := range matches {
		fmt.Fprintf(&b, "%d. %s\n", i+1, listing.Title)
		fmt.Fprintf(&b, "   Price: %.0f EUR\n", listing.Price)
		fmt.Fprintf(&b, "   Area: %.1f m2\n", listing.Area)
		fmt.Fprintf(&b, "   Description: %s\n", listing.Description)
		fmt.Fprintf(&b, "   Link: %s\n\n", listing.Link)
	}

	b.WriteString("Search criteria:\n")
	fmt.Fprintf(&b, "- Price range: %.0f - %.0f EUR\n", criteria.MinPrice, criteria.MaxPrice)
	fmt.Fprintf(&b, "- Minimum area: %.0f m2\n", criteria.MinArea)
	fmt.Fprintf(&b, "- Include keywords: %s\n", strings.Join(criteria.IncludeKeywords, ", "))
	fmt.Fprintf(&b, "- Exclude keywords: %s\n", strings.Join(criteria.ExcludeKeywords, ", "))

	return b.String()
}
