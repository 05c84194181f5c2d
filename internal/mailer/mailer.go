// Package mailer composes and delivers the plaintext prep and reorder list
// emails. Composition mirrors the printed list layout: a brand header, a
// generation timestamp, and items grouped under upper-cased category headings.
package mailer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pantrycore/internal/core"
)

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender delivers composed messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const generatedLayout = "Monday, January 2, 2006 3:04 PM"

// Composer builds list messages for a fixed brand and recipient set.
type Composer struct {
	Brand string
	From  string
	To    []string

	now func() time.Time
}

// NewComposer constructs a composer. Brand, from and to come from
// configuration; the clock defaults to time.Now.
func NewComposer(brand, from string, to []string) *Composer {
	return &Composer{Brand: brand, From: from, To: to, now: time.Now}
}

// SetClock overrides the generation timestamp clock.
func (c *Composer) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

// PrepList composes the prep list message for the given display date.
func (c *Composer) PrepList(date string, entries []core.ListEntry) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "%s PREP LIST\n", c.Brand)
	fmt.Fprintf(&b, "Generated: %s\n\n", c.now().Format(generatedLayout))
	writeGroups(&b, entries, func(e core.ListEntry) {
		fmt.Fprintf(&b, "\u2022 %s\n  - Prep Amount: %s\n  - Current Count: %s\n",
			e.Name, formatAmount(e.Amount), formatAmount(e.CurrentCount))
	})
	return Message{
		From:    c.From,
		To:      append([]string(nil), c.To...),
		Subject: "Prep List for " + date,
		Body:    b.String(),
	}
}

// ReorderList composes the reorder list message for the given display date.
// Reorder lines carry units alongside the quantities.
func (c *Composer) ReorderList(date string, entries []core.ListEntry) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "%s REORDER LIST\n", c.Brand)
	fmt.Fprintf(&b, "Generated: %s\n\n", c.now().Format(generatedLayout))
	writeGroups(&b, entries, func(e core.ListEntry) {
		fmt.Fprintf(&b, "\u2022 %s\n  - Order Amount: %s %s\n  - Current Count: %s %s\n",
			e.Name, formatAmount(e.Amount), e.Unit, formatAmount(e.CurrentCount), e.Unit)
	})
	return Message{
		From:    c.From,
		To:      append([]string(nil), c.To...),
		Subject: "Reorder List for " + date,
		Body:    b.String(),
	}
}

// writeGroups emits category sections in encounter order: an upper-cased
// heading, a dashed underline, then one bullet per entry.
func writeGroups(b *strings.Builder, entries []core.ListEntry, line func(core.ListEntry)) {
	var order []string
	groups := map[string][]core.ListEntry{}
	for _, e := range entries {
		if _, seen := groups[e.Category]; !seen {
			order = append(order, e.Category)
		}
		groups[e.Category] = append(groups[e.Category], e)
	}
	for _, category := range order {
		fmt.Fprintf(b, "\n%s:\n", strings.ToUpper(category))
		b.WriteString(strings.Repeat("-", len(category)+1))
		b.WriteString("\n")
		for _, e := range groups[category] {
			line(e)
		}
	}
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
