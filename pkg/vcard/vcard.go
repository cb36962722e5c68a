// Package vcard turns a contact profile into a vCard 3.0 card and encodes it
// as a QR code that phones can scan straight into their address book.
package vcard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/goliatone/go-sygnea/pkg/profile"
)

var (
	// ErrEmptyCard is returned when the profile has no name to put on a card.
	ErrEmptyCard = errors.New("vcard: profile has no name")
	// ErrEncode wraps QR encoding failures.
	ErrEncode = errors.New("vcard: failed to encode QR code")
)

// DefaultSize is the QR image edge in pixels used when size is not positive.
const DefaultSize = 256

const (
	crlf = "\r\n"
	// maxLineOctets is the content line limit before folding (RFC 2425 5.8.1).
	maxLineOctets = 75
)

// Card renders the vCard text for p. Social links are written as
// X-SOCIALPROFILE entries.
func Card(p profile.Profile) (string, error) {
	fields := profile.Extract(p)
	if fields.Name == "" {
		return "", ErrEmptyCard
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString(fold(s))
		b.WriteString(crlf)
	}

	line("BEGIN:VCARD")
	line("VERSION:3.0")
	given, family := splitName(fields.Name)
	line("N:" + escape(family) + ";" + escape(given) + ";;;")
	line("FN:" + escape(fields.Name))
	if fields.Position != "" {
		line("TITLE:" + escape(fields.Position))
	}
	if fields.HasWebsite() {
		line("URL:" + escape(fields.WebsiteURL))
	}
	for _, link := range fields.Social {
		line("X-SOCIALPROFILE;TYPE=" + link.Platform.ID + ":" + escape(link.URL))
	}
	line("END:VCARD")
	return b.String(), nil
}

// QRCode encodes the vCard for p as a PNG image.
func QRCode(p profile.Profile, size int) ([]byte, error) {
	card, err := Card(p)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := skipqrcode.Encode(card, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return png, nil
}

// DataURI returns the QR PNG as a data URI for <img src>.
func DataURI(p profile.Profile, size int) (string, error) {
	png, err := QRCode(p, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}

func splitName(full string) (given, family string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}

// fold splits a content line into chunks of at most maxLineOctets octets.
// Continuation lines start with a single space that counts toward the limit.
// Multi-byte runes are never split.
func fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}
	var b strings.Builder
	size := 0
	for _, r := range line {
		n := utf8.RuneLen(r)
		if size+n > maxLineOctets {
			b.WriteString(crlf + " ")
			size = 1
		}
		b.WriteRune(r)
		size += n
	}
	return b.String()
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escape(s string) string {
	return escaper.Replace(s)
}
