package mailer

import (
	"context"
	"log"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"pantrycore/internal/core"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 4, 0, 0, time.UTC)
}

func TestComposePrepList(t *testing.T) {
	c := NewComposer("ELEVENTHREE PIZZA", "taproom@example.com", []string{"taproom@example.com"})
	c.SetClock(fixedClock)

	entries := []core.ListEntry{
		{ID: "dough", Name: "Dough", Category: "Base", Amount: 6, CurrentCount: 2},
		{ID: "pecorino", Name: "Pecorino", Category: "Cheese", Amount: 1, CurrentCount: 0},
		{ID: "sanMarzano", Name: "San Marzano Sauce", Category: "Sauce", Amount: 2, CurrentCount: 1},
	}
	msg := c.PrepList("3/14/2026", entries)

	if msg.Subject != "Prep List for 3/14/2026" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	want := "ELEVENTHREE PIZZA PREP LIST\n" +
		"Generated: Saturday, March 14, 2026 3:04 PM\n" +
		"\n" +
		"\nBASE:\n" +
		"-----\n" +
		"• Dough\n  - Prep Amount: 6\n  - Current Count: 2\n" +
		"\nCHEESE:\n" +
		"-------\n" +
		"• Pecorino\n  - Prep Amount: 1\n  - Current Count: 0\n" +
		"\nSAUCE:\n" +
		"------\n" +
		"• San Marzano Sauce\n  - Prep Amount: 2\n  - Current Count: 1\n"
	if msg.Body != want {
		t.Fatalf("body mismatch:\n got %q\nwant %q", msg.Body, want)
	}
}

func TestComposeReorderListCarriesUnits(t *testing.T) {
	c := NewComposer("ELEVENTHREE PIZZA", "taproom@example.com", []string{"taproom@example.com"})
	c.SetClock(fixedClock)

	entries := []core.ListEntry{
		{ID: "caputoPizzaria", Name: "Caputo Pizzaria Flour", Category: "Flour", Unit: "kg", Amount: 3, CurrentCount: 1.5},
	}
	msg := c.ReorderList("3/14/2026", entries)

	if msg.Subject != "Reorder List for 3/14/2026" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "• Caputo Pizzaria Flour\n  - Order Amount: 3 kg\n  - Current Count: 1.50 kg\n") {
		t.Fatalf("reorder line wrong:\n%s", msg.Body)
	}
	if !strings.HasPrefix(msg.Body, "ELEVENTHREE PIZZA REORDER LIST\n") {
		t.Fatalf("header wrong:\n%s", msg.Body)
	}
}

func TestSMTPSenderEncodesMessage(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  []byte
	)
	sender := NewSMTPSender("mail.example.com:587", "user", "secret")
	sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		if a == nil {
			t.Error("expected PLAIN auth when a username is configured")
		}
		return nil
	}

	msg := Message{
		From:    "taproom@example.com",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Prep List for 3/14/2026",
		Body:    "LINE1\nLINE2\n",
	}
	if err := sender.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAddr != "mail.example.com:587" || gotFrom != msg.From || len(gotTo) != 2 {
		t.Fatalf("delivery params wrong: %q %q %v", gotAddr, gotFrom, gotTo)
	}
	wire := string(gotMsg)
	for _, header := range []string{
		"From: taproom@example.com\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: Prep List for 3/14/2026\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
	} {
		if !strings.Contains(wire, header) {
			t.Errorf("header missing: %q", header)
		}
	}
	if !strings.HasSuffix(wire, "\r\n\r\nLINE1\r\nLINE2\r\n") {
		t.Fatalf("body not CRLF separated: %q", wire)
	}
}

func TestSMTPSenderRequiresRecipients(t *testing.T) {
	sender := NewSMTPSender("localhost:25", "", "")
	if err := sender.Send(context.Background(), Message{From: "x@example.com"}); err == nil {
		t.Fatal("expected error for empty recipient list")
	}
}

func TestOpenDefaultsToLogSender(t *testing.T) {
	t.Setenv(EnvDriver, "")
	t.Setenv(EnvBrand, "")
	t.Setenv(EnvFrom, "")
	t.Setenv(EnvTo, "")

	composer, sender, err := Open(log.New(discard{}, "", 0))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if composer.Brand != "ELEVENTHREE PIZZA" {
		t.Fatalf("brand = %q", composer.Brand)
	}
	if _, ok := sender.(*LogSender); !ok {
		t.Fatalf("expected log sender, got %T", sender)
	}
}

func TestOpenSMTPDriver(t *testing.T) {
	t.Setenv(EnvDriver, "smtp")
	t.Setenv(EnvSMTPAddr, "relay.example.com:25")
	t.Setenv(EnvTo, "a@example.com, b@example.com,")

	composer, sender, err := Open(nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	smtpSender, ok := sender.(*SMTPSender)
	if !ok {
		t.Fatalf("expected smtp sender, got %T", sender)
	}
	if smtpSender.Addr != "relay.example.com:25" {
		t.Fatalf("addr = %q", smtpSender.Addr)
	}
	if len(composer.To) != 2 {
		t.Fatalf("recipient list = %v", composer.To)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Setenv(EnvDriver, "carrier-pigeon")
	if _, _, err := Open(nil); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
