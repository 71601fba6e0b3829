package mailparse

import (
	"bytes"
	"io"
	"testing"

	"github.com/emersion/go-imap"
)

func newMessage(uid uint32, raw string) *imap.Message {
	msg := imap.NewMessage(1, []imap.FetchItem{imap.FetchUid})
	msg.Uid = uid
	msg.Body = map[*imap.BodySectionName]imap.Literal{
		{}: bytes.NewBufferString(raw),
	}
	return msg
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Plain ASCII",
			input:    "Hello World",
			expected: "Hello World",
			wantErr:  false,
		},
		{
			name:     "UTF-8 encoded",
			input:    "=?UTF-8?Q?Important_:_comment_mettre_=C3=A0_jour?=",
			expected: "Important : comment mettre à jour",
			wantErr:  false,
		},
		{
			name:     "ISO-8859-1 encoded",
			input:    "=?ISO-8859-1?Q?Caf=E9?=",
			expected: "Café",
			wantErr:  false,
		},
		{
			name:     "Base64 encoded",
			input:    "=?UTF-8?B?SGVsbG8gV29ybGQ=?=",
			expected: "Hello World",
			wantErr:  false,
		},
		{
			name:     "Windows-1252 encoded",
			input:    "=?windows-1252?Q?=80_invoice?=",
			expected: "€ invoice",
			wantErr:  false,
		},
		{
			name:     "Encoded name with address",
			input:    "=?UTF-8?B?SsO8cmdlbg==?= <jurgen@example.com>",
			expected: "Jürgen <jurgen@example.com>",
			wantErr:  false,
		},
		{
			name:    "Unknown charset",
			input:   "=?x-no-such-charset?Q?abc?=",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHeader(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeHeader() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("DecodeHeader() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	raw := "From: =?UTF-8?B?SsO8cmdlbg==?= <jurgen@example.com>\r\n" +
		"To: alice@example.com\r\n" +
		"Subject: =?UTF-8?Q?R=C3=A9union?=\r\n" +
		" de lundi\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Body is not read.\r\n"

	email, err := Parse(newMessage(42, raw))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if email.UID != 42 {
		t.Errorf("Expected UID 42, got %d", email.UID)
	}
	if email.From != "Jürgen <jurgen@example.com>" {
		t.Errorf("Unexpected From: %q", email.From)
	}
	if email.Subject != "Réunion de lundi" {
		t.Errorf("Unexpected Subject: %q", email.Subject)
	}
}

func TestParse_Fallbacks(t *testing.T) {
	raw := "From: =?x-no-such-charset?Q?abc?= <x@example.com>\r\n" +
		"\r\n"

	email, err := Parse(newMessage(7, raw))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if email.From != "=?x-no-such-charset?Q?abc?= <x@example.com>" {
		t.Errorf("Expected raw From fallback, got %q", email.From)
	}
	if email.Subject != "" {
		t.Errorf("Expected empty Subject for a missing header, got %q", email.Subject)
	}
}

func TestParse_NoBody(t *testing.T) {
	msg := imap.NewMessage(1, []imap.FetchItem{imap.FetchUid})

	if _, err := Parse(msg); err != io.EOF {
		t.Errorf("Expected io.EOF for a message without body, got %v", err)
	}
}

func TestParse_MalformedHeaderLines(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantFrom    string
		wantSubject string
	}{
		{
			name:        "Line without colon",
			raw:         "From: a@example.com\r\nthis is junk\r\nSubject: hi\r\n\r\nbody",
			wantFrom:    "a@example.com",
			wantSubject: "hi",
		},
		{
			name:        "Key with space",
			raw:         "Bad Key: x\r\n  continued junk\r\nSubject: =?UTF-8?Q?caf=C3=A9?=\r\nFrom: b@example.com\r\n\r\n",
			wantFrom:    "b@example.com",
			wantSubject: "café",
		},
		{
			name:        "Leading continuation line",
			raw:         " stray\r\nFrom: c@example.com\r\nSubject: ok\r\n\r\n",
			wantFrom:    "c@example.com",
			wantSubject: "ok",
		},
		{
			name:        "Nothing usable",
			raw:         "garbage\r\nmore garbage\r\n\r\n",
			wantFrom:    "",
			wantSubject: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := Parse(newMessage(1, tt.raw))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if email.From != tt.wantFrom {
				t.Errorf("From = %q, want %q", email.From, tt.wantFrom)
			}
			if email.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", email.Subject, tt.wantSubject)
			}
		})
	}
}
