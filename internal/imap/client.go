package imap

import (
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

var errNotConnected = errors.New("not connected")

type StandardClient struct {
	client  *client.Client
	timeout time.Duration
}

// NewStandardClient creates a new StandardClient with a default timeout of 30 seconds for IMAP operations
func NewStandardClient() *StandardClient {
	return &StandardClient{
		timeout: 30 * time.Second,
	}
}

// Connect establishes a secure connection to the IMAP server using implicit TLS. It returns an error if the connection fails.
func (c *StandardClient) Connect(server string) error {
	cl, err := client.DialTLS(server, nil)
	if err != nil {
		return err
	}
	cl.Timeout = c.timeout
	c.client = cl
	return nil
}

// Login authenticates the user with the IMAP server. The returned error carries the server's response text.
func (c *StandardClient) Login(user, password string) error {
	if c.client == nil {
		return errNotConnected
	}
	return c.client.Login(user, password)
}

// SelectMailbox selects the named mailbox, with EXAMINE when readOnly is set.
func (c *StandardClient) SelectMailbox(name string, readOnly bool) error {
	if c.client == nil {
		return errNotConnected
	}
	_, err := c.client.Select(name, readOnly)
	return err
}

// UnseenCount asks the server for the UNSEEN status item of the named mailbox.
func (c *StandardClient) UnseenCount(name string) (uint32, error) {
	if c.client == nil {
		return 0, errNotConnected
	}

	status, err := c.client.Status(name, []imap.StatusItem{imap.StatusUnseen})
	if err != nil {
		return 0, err
	}
	if _, ok := status.Items[imap.StatusUnseen]; !ok {
		return 0, fmt.Errorf("no UNSEEN item in status of %s", name)
	}
	return status.Unseen, nil
}

// ListUnseenUIDs retrieves the UIDs of all unseen messages in the selected mailbox, in ascending order.
func (c *StandardClient) ListUnseenUIDs() ([]uint32, error) {
	if c.client == nil {
		return nil, errNotConnected
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}

	return c.client.UidSearch(criteria)
}

// FetchMessage retrieves the full message with the given UID. With peek set the fetch uses BODY.PEEK[] and leaves the \Seen flag alone.
func (c *StandardClient) FetchMessage(uid uint32, peek bool) (*imap.Message, error) {
	if c.client == nil {
		return nil, errNotConnected
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	section := &imap.BodySectionName{Peek: peek}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchUid}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- c.client.UidFetch(seqSet, items, messages)
	}()

	var msg *imap.Message
	for m := range messages {
		msg = m
	}

	if err := <-done; err != nil {
		return nil, err
	}

	if msg == nil {
		return nil, fmt.Errorf("no message retrieved for UID %d", uid)
	}

	return msg, nil
}

// MarkUnseen clears the \Seen flag of the message with the given UID.
func (c *StandardClient) MarkUnseen(uid uint32) error {
	if c.client == nil {
		return errNotConnected
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	item := imap.FormatFlagsOp(imap.RemoveFlags, true)
	flags := []interface{}{imap.SeenFlag}

	return c.client.UidStore(seqSet, item, flags, nil)
}

// CloseMailbox issues CLOSE for the selected mailbox.
func (c *StandardClient) CloseMailbox() error {
	if c.client == nil {
		return errNotConnected
	}
	return c.client.Close()
}

// Close logs out from the IMAP server and closes the connection. If there is no active connection, it simply returns nil.
func (c *StandardClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Logout()
}
