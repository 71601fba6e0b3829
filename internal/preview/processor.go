package preview

import (
	"net"
	"strconv"

	imapclient "imap-unseen-preview/internal/imap"
	"imap-unseen-preview/internal/logging"
	"imap-unseen-preview/internal/mailparse"
	"imap-unseen-preview/internal/models"
	"imap-unseen-preview/internal/report"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Processor struct {
	imapClient imapclient.Client
	config     *models.Config
	log        *logrus.Entry
}

// NewProcessor creates a new Processor instance with the provided IMAP client and configuration
func NewProcessor(imapClient imapclient.Client, cfg *models.Config) *Processor {
	return &Processor{
		imapClient: imapClient,
		config:     cfg,
		log:        logging.Log.WithField("run_id", uuid.New().String()),
	}
}

// Run orchestrates the whole preview workflow:
// connect → login → select → status → search → (fetch → parse → restore)* → close
// The first failure aborts the run and is returned as a *models.RunError.
func (p *Processor) Run() (*report.Report, error) {
	cfg := p.config
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	p.log.Debugf("Connecting to %s", addr)
	if err := p.imapClient.Connect(addr); err != nil {
		return nil, models.Fail(models.StageConnect, "Error connecting to "+cfg.Host, err)
	}
	defer func() {
		if err := p.imapClient.Close(); err != nil {
			p.log.Warnf("Logout error: %v", err)
		}
	}()

	if err := p.imapClient.Login(cfg.User, cfg.Password); err != nil {
		return nil, models.Fail(models.StageLogin, "Error during "+cfg.User+" login", err)
	}
	p.log.Debugf("Logged in as %s", cfg.User)

	if err := p.imapClient.SelectMailbox(cfg.Mailbox, cfg.ReadOnly); err != nil {
		return nil, models.Fail(models.StageSelect, "Cannot select mailbox", err)
	}

	unseen, err := p.imapClient.UnseenCount(cfg.Mailbox)
	if err != nil {
		return nil, models.Fail(models.StageStatus, "Cannot get UNSEEN status", err)
	}

	uids, err := p.imapClient.ListUnseenUIDs()
	if err != nil {
		return nil, models.Fail(models.StageSearch, "Cannot search UNSEEN email in "+cfg.Mailbox, err)
	}

	count := previewCount(unseen, cfg.Preview, len(uids))
	p.log.WithFields(logrus.Fields{
		"mailbox": cfg.Mailbox,
		"unseen":  unseen,
		"found":   len(uids),
		"preview": count,
	}).Info("Unseen messages listed")

	result := &report.Report{Unseen: unseen}
	for i := 0; i < count; i++ {
		email, err := p.previewMessage(uids[len(uids)-1-i])
		if err != nil {
			return nil, err
		}
		result.Previews = append(result.Previews, *email)
	}

	if err := p.imapClient.CloseMailbox(); err != nil {
		p.log.Warnf("Error closing mailbox %s: %v", cfg.Mailbox, err)
	}

	return result, nil
}

// previewMessage fetches one message, decodes its headers and puts back the unseen state
func (p *Processor) previewMessage(uid uint32) (*models.Email, error) {
	msg, err := p.imapClient.FetchMessage(uid, p.config.ReadOnly)
	if err != nil {
		return nil, models.Fail(models.StageFetch, "Cannot fetch email", err)
	}

	// A writable fetch of BODY[] has just set \Seen, we only previewed the headers.
	if !p.config.ReadOnly {
		if err := p.imapClient.MarkUnseen(uid); err != nil {
			return nil, models.Fail(models.StageRestore, "Cannot restore unseen flag", err)
		}
	}

	// Parse only fails when the server sent no readable body, which is a failed fetch
	email, err := mailparse.Parse(msg)
	if err != nil {
		return nil, models.Fail(models.StageFetch, "Cannot fetch email", err)
	}
	email.UID = uid

	p.log.Debugf("Previewed message UID %d", uid)
	return email, nil
}

// previewCount caps the unseen count by a positive preview limit and by the number of UIDs actually found
func previewCount(unseen uint32, limit, found int) int {
	count := int(unseen)
	if limit > 0 && limit < count {
		count = limit
	}
	if found < count {
		count = found
	}
	return count
}
