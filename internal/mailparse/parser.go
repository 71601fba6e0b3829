package mailparse

import (
	"bufio"
	"bytes"
	"io"
	"mime"
	"strings"

	"imap-unseen-preview/internal/models"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/textproto"
)

var unfolder = strings.NewReplacer("\r\n", "", "\n", "")

// Parse extracts the decoded From and Subject of a fetched message. Only the header block is used.
// Malformed header lines are skipped rather than failing the message.
func Parse(msg *imap.Message) (*models.Email, error) {
	section := &imap.BodySectionName{}
	r := msg.GetBody(section)
	if r == nil {
		return nil, io.EOF
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	header, err := readHeader(raw)
	if err != nil {
		// Retry without the offending lines, keep partial fields if that fails too
		if cleaned, cleanErr := readHeader(dropMalformedLines(raw)); cleanErr == nil {
			header = cleaned
		}
	}

	return &models.Email{
		UID:     msg.Uid,
		From:    headerText(header, "From"),
		Subject: headerText(header, "Subject"),
	}, nil
}

func readHeader(raw []byte) (textproto.Header, error) {
	return textproto.ReadHeader(bufio.NewReader(bytes.NewReader(raw)))
}

// dropMalformedLines returns the header block of raw keeping only "key: value" lines with a valid key
// and the continuation lines that follow a kept line.
func dropMalformedLines(raw []byte) []byte {
	var out bytes.Buffer
	keep := false

	for _, line := range strings.SplitAfter(string(raw), "\n") {
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}

		if trimmed[0] == ' ' || trimmed[0] == '\t' {
			if keep {
				out.WriteString(trimmed + "\r\n")
			}
			continue
		}

		keep = validFieldLine(trimmed)
		if keep {
			out.WriteString(trimmed + "\r\n")
		}
	}

	out.WriteString("\r\n")
	return out.Bytes()
}

// validFieldLine reports whether line starts with a RFC 5322 field name followed by a colon
func validFieldLine(line string) bool {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return false
	}
	key := strings.TrimRight(line[:i], " \t")
	if key == "" {
		return false
	}
	for j := 0; j < len(key); j++ {
		if c := key[j]; c < 33 || c > 126 {
			return false
		}
	}
	return true
}

// headerText returns the decoded value of a header field, or its raw text if decoding fails
func headerText(header textproto.Header, key string) string {
	raw := unfolder.Replace(header.Get(key))
	decoded, err := DecodeHeader(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text
func DecodeHeader(encoded string) (string, error) {
	decoder := &mime.WordDecoder{CharsetReader: charset.Reader}
	decoded, err := decoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}
