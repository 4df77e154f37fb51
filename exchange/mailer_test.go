// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPairing() Pairing {
	return Pairing{
		Giver:    makePerson("Alice", "alice@example.com"),
		Receiver: makePerson("Bob", "bob@example.com"),
	}
}

func TestMailBodies(t *testing.T) {
	req := require.New(t)
	p := testPairing()

	var text bytes.Buffer
	req.NoError(textTmpl.Execute(&text, p))
	req.Contains(text.String(), "Happy Holidays Alice!")
	req.Contains(text.String(), "Your match is: Bob")
	req.Contains(text.String(), "bob@example.com")
	req.NotContains(text.String(), "alice@example.com", "the giver's own details stay out of the body")

	var html bytes.Buffer
	req.NoError(htmlTmpl.Execute(&html, p))
	req.Contains(html.String(), "<i>Your match: Bob</i>")
	req.Contains(html.String(), "Bob&#39;s place")
}

func TestMailBodies_HTMLEscaping(t *testing.T) {
	req := require.New(t)

	p := testPairing()
	p.Receiver.GiftIdeas = `socks <script>alert("x")</script>`

	var html bytes.Buffer
	req.NoError(htmlTmpl.Execute(&html, p))
	req.NotContains(html.String(), "<script>")
	req.Contains(html.String(), "&lt;script&gt;")
}

func TestMailer_Compose(t *testing.T) {
	req := require.New(t)

	mailer := NewMailer(SMTPConfig{
		Username: "sender@example.com",
		Subject:  "Secret Snowflake Match",
	}, slog.Default())
	req.Equal("sender@example.com", mailer.cfg.From, "From falls back to Username")

	msg, err := mailer.compose(testPairing())
	req.NoError(err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	req.NoError(err)

	raw := buf.String()
	req.Contains(raw, "To: <alice@example.com>")
	req.Contains(raw, "multipart/alternative")
	req.Contains(raw, "text/plain")
	req.Contains(raw, "text/html")
}

func TestMailer_ComposeRejectsBadAddress(t *testing.T) {
	req := require.New(t)

	mailer := NewMailer(SMTPConfig{Username: "sender@example.com"}, slog.Default())

	p := testPairing()
	p.Giver.Email = "not an address"
	_, err := mailer.compose(p)
	req.Error(err)
}
