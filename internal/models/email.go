package models

// Email represents the previewed headers of one unseen message
type Email struct {
	UID     uint32
	From    string
	Subject string
}
