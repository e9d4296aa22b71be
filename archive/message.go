// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package archive

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MessageHeader is the structured header block written at the top of
// every message archive file (spec.md §6 "Message file header format").
type MessageHeader struct {
	ID          int64
	Thread      string
	From        string
	To          []string
	CC          []string
	BCC         []string
	Subject     string
	Importance  string
	AckRequired bool
	Created     time.Time
}

// RenderMessageFile renders the canonical Markdown document: the
// header block (key: value lines), a blank line, then the body
// verbatim (spec.md §6).
func RenderMessageFile(h MessageHeader, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %d\n", h.ID)
	fmt.Fprintf(&b, "thread: %s\n", h.Thread)
	fmt.Fprintf(&b, "from: %s\n", h.From)
	fmt.Fprintf(&b, "to: %s\n", strings.Join(h.To, ","))
	fmt.Fprintf(&b, "cc: %s\n", strings.Join(h.CC, ","))
	fmt.Fprintf(&b, "bcc: %s\n", strings.Join(h.BCC, ","))
	fmt.Fprintf(&b, "subject: %s\n", h.Subject)
	fmt.Fprintf(&b, "importance: %s\n", h.Importance)
	fmt.Fprintf(&b, "ack_required: %s\n", strconv.FormatBool(h.AckRequired))
	fmt.Fprintf(&b, "created: %s\n", h.Created.UTC().Format(time.RFC3339))
	b.WriteString("\n")
	b.WriteString(body)
	return []byte(b.String())
}
