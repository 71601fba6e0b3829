package imap

import (
	"github.com/emersion/go-imap"
)

type Client interface {
	Connect(server string) error
	Login(user, password string) error
	SelectMailbox(name string, readOnly bool) error
	UnseenCount(name string) (uint32, error)
	ListUnseenUIDs() ([]uint32, error)
	FetchMessage(uid uint32, peek bool) (*imap.Message, error)
	MarkUnseen(uid uint32) error
	CloseMailbox() error
	Close() error
}
