package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/mail"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/mhdyaseenvattappara/yazzfolio/validation"
)

// InboxService stores contact-form messages and answers them by email.
type InboxService struct {
	messages store.Collection[models.ContactMessage]
	mailer   mail.Sender
}

func NewInboxService(messages store.Collection[models.ContactMessage], mailer mail.Sender) *InboxService {
	return &InboxService{messages: messages, mailer: mailer}
}

// Submit validates and stores a message left on the public site.
func (s *InboxService) Submit(ctx context.Context, owner string, msg *models.ContactMessage) (validation.Violations, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.IsRead = false
	msg.ID = ""

	v := make(validation.Violations)
	validation.Struct(msg, v)
	if !v.Empty() {
		return v, nil
	}
	if err := s.messages.Save(ctx, owner, msg); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}
	return nil, nil
}

// List returns messages newest first.
func (s *InboxService) List(ctx context.Context, owner string) ([]models.ContactMessage, error) {
	return s.messages.List(ctx, owner, store.Query{OrderBy: "created_at", Desc: true})
}

// Unread counts messages not yet marked read.
func (s *InboxService) Unread(ctx context.Context, owner string) (int, error) {
	unread, err := s.messages.List(ctx, owner, store.Query{Where: []store.Filter{{Field: "is_read", Value: false}}})
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

// ToggleRead flips the read flag and returns the new value.
func (s *InboxService) ToggleRead(ctx context.Context, owner, id string) (bool, error) {
	msg, err := s.messages.Get(ctx, owner, id)
	if err != nil {
		return false, err
	}
	read := !msg.IsRead
	if err := s.messages.Update(ctx, owner, id, map[string]any{"is_read": read}); err != nil {
		return false, err
	}
	return read, nil
}

func (s *InboxService) Delete(ctx context.Context, owner, id string) error {
	return s.messages.Delete(ctx, owner, id)
}

// Reply emails the sender and marks the message read.
func (s *InboxService) Reply(ctx context.Context, owner, id, subject, body string) error {
	msg, err := s.messages.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(subject) == "" {
		subject = "Re: " + msg.Subject
	}
	err = s.mailer.Send(ctx, mail.Message{
		ToName:  msg.Name,
		ToEmail: msg.Email,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	if msg.IsRead {
		return nil
	}
	return s.messages.Update(ctx, owner, id, map[string]any{"is_read": true})
}
