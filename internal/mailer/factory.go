package mailer

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// Environment variables controlling delivery.
const (
	// EnvDriver selects the sender: "smtp" or "log". Defaults to "log".
	EnvDriver = "PANTRYCORE_MAIL_DRIVER"
	// EnvBrand is the header brand line. Defaults to "ELEVENTHREE PIZZA".
	EnvBrand = "PANTRYCORE_MAIL_BRAND"
	// EnvFrom is the sender address.
	EnvFrom = "PANTRYCORE_MAIL_FROM"
	// EnvTo is the comma-separated recipient list.
	EnvTo = "PANTRYCORE_MAIL_TO"
	// EnvSMTPAddr is the SMTP host:port. Defaults to "localhost:25".
	EnvSMTPAddr = "PANTRYCORE_SMTP_ADDR"
	// EnvSMTPUsername enables PLAIN auth when set.
	EnvSMTPUsername = "PANTRYCORE_SMTP_USERNAME"
	// EnvSMTPPassword is the PLAIN auth password.
	EnvSMTPPassword = "PANTRYCORE_SMTP_PASSWORD"
)

const (
	defaultBrand    = "ELEVENTHREE PIZZA"
	defaultAddress  = "taproom@eleventhreebrewing.com"
	defaultSMTPAddr = "localhost:25"
)

// LogSender logs composed messages instead of delivering them. The default
// for development so list sending works without an SMTP relay.
type LogSender struct {
	Logger *log.Logger
}

// Send implements Sender.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("mail to=%s subject=%q\n%s", strings.Join(msg.To, ","), msg.Subject, msg.Body)
	return nil
}

var _ Sender = (*LogSender)(nil)

// Open constructs the composer and sender from environment configuration.
func Open(logger *log.Logger) (*Composer, Sender, error) {
	brand := envOr(EnvBrand, defaultBrand)
	from := envOr(EnvFrom, defaultAddress)
	to := splitList(envOr(EnvTo, defaultAddress))
	composer := NewComposer(brand, from, to)

	driver := strings.ToLower(strings.TrimSpace(os.Getenv(EnvDriver)))
	switch driver {
	case "", "log":
		return composer, &LogSender{Logger: logger}, nil
	case "smtp":
		addr := envOr(EnvSMTPAddr, defaultSMTPAddr)
		return composer, NewSMTPSender(addr, os.Getenv(EnvSMTPUsername), os.Getenv(EnvSMTPPassword)), nil
	default:
		return nil, nil, fmt.Errorf("unsupported mail driver %q", driver)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
