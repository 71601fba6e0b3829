package models

// DefaultPort is the implicit-TLS IMAP port
const DefaultPort = 993

// DefaultMailbox is selected when the configuration names none
const DefaultMailbox = "INBOX"

// Config represents the application configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Mailbox  string

	// Preview caps the number of previewed messages, 0 means no limit.
	Preview int

	// ReadOnly opens the mailbox with EXAMINE and fetches with BODY.PEEK[].
	ReadOnly bool

	LogLevel       string
	KeyringService string
}
