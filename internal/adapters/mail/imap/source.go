// Package imap implements the inbound mail transport on top of an
// IMAP mailbox. Candidate items are the unseen messages in the
// configured folder whose subject matches the intake filter;
// acknowledging an item sets its \Seen flag.
package imap

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/senders"
)

// Options holds the connection parameters for the IMAP source.
type Options struct {
	Host               string
	Port               int
	Username           string
	Password           string
	UseTLS             bool
	InsecureSkipVerify bool
	Folder             string
	SubjectFilter      string
}

// Source is an IMAP-backed core.MailSource. The connection is dialed
// lazily on first use and reused across calls within a run.
type Source struct {
	opts    Options
	checker *senders.Checker
	logger  *zap.Logger

	mu     sync.Mutex
	client *imapclient.Client
}

// NewSource creates an IMAP mail source. It does not dial; connection
// errors surface from the first ListCandidateItems or Acknowledge call.
func NewSource(opts Options, checker *senders.Checker, logger *zap.Logger) *Source {
	return &Source{
		opts:    opts,
		checker: checker,
		logger:  logger,
	}
}

func (s *Source) ensureClient(ctx context.Context) (*imapclient.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	address := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
	options := &imapclient.Options{}

	var (
		client *imapclient.Client
		err    error
	)

	if s.opts.UseTLS {
		options.TLSConfig = &tls.Config{
			ServerName:         s.opts.Host,
			InsecureSkipVerify: s.opts.InsecureSkipVerify,
		}
		client, err = imapclient.DialTLS(address, options)
	} else {
		client, err = imapclient.DialInsecure(address, options)
	}
	if err != nil {
		return nil, fmt.Errorf("dial imap %s: %w", address, err)
	}

	if err := client.Login(s.opts.Username, s.opts.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	if _, err := client.Select(s.opts.Folder, nil).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("select folder %q: %w", s.opts.Folder, err)
	}

	s.logger.Debug("imap connection established",
		zap.String("address", address),
		zap.String("user", s.opts.Username),
		zap.String("folder", s.opts.Folder),
		zap.Bool("tls", s.opts.UseTLS))

	s.client = client
	return client, nil
}

// ListCandidateItems searches the folder for unseen messages whose
// subject contains the intake filter, fetches their envelopes and
// bodies, and returns them as inbound items keyed by UID.
func (s *Source) ListCandidateItems(ctx context.Context) ([]*core.InboundItem, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}
	if s.opts.SubjectFilter != "" {
		criteria.Header = []imap.SearchCriteriaHeaderField{
			{Key: "Subject", Value: s.opts.SubjectFilter},
		}
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap search: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		s.logger.Debug("no unseen matching messages", zap.String("folder", s.opts.Folder))
		return nil, nil
	}

	fetchOptions := &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{{}},
	}

	messages, err := client.Fetch(imap.UIDSetNum(uids...), fetchOptions).Collect()
	if err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}

	items := make([]*core.InboundItem, 0, len(messages))
	for _, msg := range messages {
		item, ok := s.buildItem(msg)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	s.logger.Info("listed candidate items",
		zap.String("folder", s.opts.Folder),
		zap.Int("unseen", len(uids)),
		zap.Int("candidates", len(items)))
	return items, nil
}

func (s *Source) buildItem(msg *imapclient.FetchMessageBuffer) (*core.InboundItem, bool) {
	if msg.Envelope == nil {
		s.logger.Warn("message without envelope, skipping", zap.Uint32("uid", uint32(msg.UID)))
		return nil, false
	}

	// The server-side subject search is substring based on most
	// servers but not all, so apply the filter again here.
	subject := msg.Envelope.Subject
	if s.opts.SubjectFilter != "" &&
		!strings.Contains(strings.ToUpper(subject), strings.ToUpper(s.opts.SubjectFilter)) {
		return nil, false
	}

	from := ""
	if len(msg.Envelope.From) > 0 {
		from = msg.Envelope.From[0].Addr()
	}
	if !s.checker.IsTrusted(from) {
		return nil, false
	}

	raw := msg.FindBodySection(&imap.FetchItemBodySection{})
	body := extractBody(raw, s.logger)

	return &core.InboundItem{
		ID:         strconv.FormatUint(uint64(msg.UID), 10),
		Subject:    subject,
		Body:       body,
		From:       from,
		ReceivedAt: msg.Envelope.Date,
	}, true
}

// extractBody pulls the message body out of the raw RFC 822 bytes,
// preferring text/html since the document links live in the anchor
// tags. Falls back to the raw text when MIME parsing fails.
func extractBody(raw []byte, logger *zap.Logger) string {
	if len(raw) == 0 {
		return ""
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		logger.Debug("mime parse failed, using raw body", zap.Error(err))
		return string(raw)
	}

	var plain, html string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Debug("mime part read failed", zap.Error(err))
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}

		content, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}

		switch contentType {
		case "text/html":
			html = string(content)
		case "text/plain":
			plain = string(content)
		}
	}

	if html != "" {
		return html
	}
	if plain != "" {
		return plain
	}
	return string(raw)
}

// Acknowledge sets the \Seen flag on the message. Setting a flag that
// is already set is a no-op on the server, which gives the idempotency
// the interface requires.
func (s *Source) Acknowledge(ctx context.Context, itemID string) error {
	uid, err := strconv.ParseUint(itemID, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid item id %q: %w", itemID, err)
	}

	client, err := s.ensureClient(ctx)
	if err != nil {
		return err
	}

	storeFlags := &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}
	if err := client.Store(imap.UIDSetNum(imap.UID(uid)), storeFlags, nil).Close(); err != nil {
		return fmt.Errorf("mark seen uid %d: %w", uid, err)
	}

	s.logger.Debug("acknowledged item", zap.Uint64("uid", uid))
	return nil
}

// Close logs out and tears down the connection if one was established.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	client := s.client
	s.client = nil

	if err := client.Logout().Wait(); err != nil {
		s.logger.Debug("imap logout failed", zap.Error(err))
	}
	return client.Close()
}
