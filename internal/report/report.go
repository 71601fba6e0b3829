package report

import (
	"strconv"
	"strings"

	"imap-unseen-preview/internal/models"
)

// ErrPrefix opens every failure block
const ErrPrefix = "ERR\n"

// Ellipsis marks a preview that left some unseen messages out
const Ellipsis = "..."

// Report is the outcome of a successful run, previews are newest first
type Report struct {
	Unseen   uint32
	Previews []models.Email
}

// Truncated reports whether some unseen messages were not previewed
func (r *Report) Truncated() bool {
	return uint32(len(r.Previews)) < r.Unseen
}

// String renders the count line and one From/Subject block per preview.
// The final newline is dropped, then the ellipsis line is appended when truncated.
func (r *Report) String() string {
	var b strings.Builder

	b.WriteString(strconv.FormatUint(uint64(r.Unseen), 10))
	b.WriteString("\n")
	for _, email := range r.Previews {
		b.WriteString("From: " + email.From + "\n")
		b.WriteString("Subject: " + email.Subject + "\n")
		b.WriteString("\n")
	}

	out := strings.TrimSuffix(b.String(), "\n")
	if r.Truncated() {
		if len(r.Previews) == 0 {
			out += "\n"
		}
		out += Ellipsis + "\n"
	}
	return out
}

// Failure renders the ERR block for a failed run
func Failure(err error) string {
	return ErrPrefix + err.Error() + "\n"
}
