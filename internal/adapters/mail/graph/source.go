// Package graph implements the inbound mail transport on top of the
// Microsoft Graph API for mailboxes hosted on Exchange Online.
// Candidate items are the unread messages in the configured folder;
// acknowledging an item patches isRead to true.
package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/users"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/senders"
)

const defaultPageSize = int32(100)

// Source is a Microsoft Graph backed core.MailSource.
type Source struct {
	client        *msgraphsdk.GraphServiceClient
	userID        string
	folder        string
	subjectFilter string
	checker       *senders.Checker
	logger        *zap.Logger
}

// NewSource creates a Graph mail source for one mailbox. folder is a
// mail folder id or well-known name such as "inbox".
func NewSource(client *msgraphsdk.GraphServiceClient, userID, folder, subjectFilter string, checker *senders.Checker, logger *zap.Logger) *Source {
	if folder == "" {
		folder = "inbox"
	}
	return &Source{
		client:        client,
		userID:        userID,
		folder:        folder,
		subjectFilter: subjectFilter,
		checker:       checker,
		logger:        logger,
	}
}

// ListCandidateItems lists the unread messages in the folder and keeps
// the ones whose subject matches the intake filter. The unread
// constraint is applied server side; Graph does not support a reliable
// substring filter on subject, so that part happens here.
func (s *Source) ListCandidateItems(ctx context.Context) ([]*core.InboundItem, error) {
	top := defaultPageSize
	filter := "isRead eq false"

	requestConfig := &users.ItemMailFoldersItemMessagesRequestBuilderGetRequestConfiguration{
		QueryParameters: &users.ItemMailFoldersItemMessagesRequestBuilderGetQueryParameters{
			Top:    &top,
			Filter: &filter,
			Select: []string{"id", "subject", "from", "body", "receivedDateTime"},
		},
	}

	result, err := s.client.Users().ByUserId(s.userID).
		MailFolders().ByMailFolderId(s.folder).
		Messages().Get(ctx, requestConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := result.GetValue()
	items := make([]*core.InboundItem, 0, len(messages))
	for _, msg := range messages {
		item, ok := s.buildItem(msg)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	s.logger.Info("listed candidate items",
		zap.String("folder", s.folder),
		zap.Int("unread", len(messages)),
		zap.Int("candidates", len(items)))
	return items, nil
}

func (s *Source) buildItem(m models.Messageable) (*core.InboundItem, bool) {
	item := &core.InboundItem{}

	if id := m.GetId(); id != nil {
		item.ID = *id
	}
	if item.ID == "" {
		return nil, false
	}

	if subject := m.GetSubject(); subject != nil {
		item.Subject = *subject
	}
	if s.subjectFilter != "" &&
		!strings.Contains(strings.ToUpper(item.Subject), strings.ToUpper(s.subjectFilter)) {
		return nil, false
	}

	if from := m.GetFrom(); from != nil {
		if emailAddr := from.GetEmailAddress(); emailAddr != nil {
			if addr := emailAddr.GetAddress(); addr != nil {
				item.From = *addr
			}
		}
	}
	if !s.checker.IsTrusted(item.From) {
		return nil, false
	}

	if body := m.GetBody(); body != nil {
		if content := body.GetContent(); content != nil {
			item.Body = *content
		}
	}

	if rcvd := m.GetReceivedDateTime(); rcvd != nil {
		item.ReceivedAt = *rcvd
	}

	return item, true
}

// Acknowledge patches the message's isRead flag to true. Patching an
// already-read message succeeds without side effects, which satisfies
// the idempotency requirement.
func (s *Source) Acknowledge(ctx context.Context, itemID string) error {
	isRead := true
	patch := models.NewMessage()
	patch.SetIsRead(&isRead)

	if _, err := s.client.Users().ByUserId(s.userID).
		Messages().ByMessageId(itemID).
		Patch(ctx, patch, nil); err != nil {
		return fmt.Errorf("failed to mark message %s read: %w", itemID, err)
	}

	s.logger.Debug("acknowledged item", zap.String("id", itemID))
	return nil
}

// staticTokenCredential implements Azure credential interface
type staticTokenCredential struct {
	token string
}

func (c *staticTokenCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{
		Token:     c.token,
		ExpiresOn: time.Now().Add(1 * time.Hour),
	}, nil
}
