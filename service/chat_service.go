// api/service/chat_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/dao"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/util"
)

// IChatService defines the interface for assistant chat operations
type IChatService interface {
	CreateChat(ctx context.Context, p *auth.Principal, title, firstMessage string) (*model.Chat, error)
	GetChat(ctx context.Context, p *auth.Principal, chatID string) (*model.Chat, error)
	AddMessage(ctx context.Context, p *auth.Principal, chatID, content string) (*model.Chat, error)
	ListChats(ctx context.Context, p *auth.Principal, page, limit int) ([]*model.Chat, model.Pagination, error)
	DeleteChat(ctx context.Context, p *auth.Principal, chatID string) error
}

type ChatService struct {
	chatDAO        *dao.ChatDAO
	validationUtil *util.ValidationUtil
}

var _ IChatService = &ChatService{}

func NewChatService(chatDAO *dao.ChatDAO, validationUtil *util.ValidationUtil) *ChatService {
	return &ChatService{chatDAO: chatDAO, validationUtil: validationUtil}
}

// assistantReply is the placeholder response until a model backend is wired
// in. The chat plumbing, scoping and audit trail are real either way.
func assistantReply(content string) model.Message {
	return model.Message{
		Role:      "assistant",
		Content:   fmt.Sprintf("I received your message: %q. A specialist will follow up shortly.", content),
		Timestamp: time.Now().UTC(),
	}
}

func (s *ChatService) CreateChat(ctx context.Context, p *auth.Principal, title, firstMessage string) (*model.Chat, error) {
	if err := auth.CheckOrganization(p); err != nil {
		return nil, err
	}

	chat := model.Chat{
		OrganizationID: p.OrganizationID,
		UserID:         p.ID,
		Title:          title,
		Status:         model.ChatActive,
	}
	if firstMessage != "" {
		chat.Messages = []model.Message{
			{Role: "user", Content: firstMessage, Timestamp: time.Now().UTC()},
			assistantReply(firstMessage),
		}
	}
	if err := s.validationUtil.ValidateChat(chat); err != nil {
		return nil, app_errors.ErrInvalidChatData
	}

	chatID, err := s.chatDAO.CreateChat(ctx, chat)
	if err != nil {
		return nil, err
	}
	return s.chatDAO.GetChat(ctx, chatID)
}

// GetChat reads one conversation. Foreign-organization chats are reported as
// missing rather than forbidden so their existence leaks nothing.
func (s *ChatService) GetChat(ctx context.Context, p *auth.Principal, chatID string) (*model.Chat, error) {
	chat, err := s.chatDAO.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(p, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) authorize(p *auth.Principal, chat *model.Chat) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if chat.OrganizationID != p.OrganizationID {
		return app_errors.ErrChatNotFound
	}
	if chat.UserID == p.ID {
		return nil
	}
	// Managers and above can review any conversation in their organization.
	if p.Role.AtLeast(model.RoleManager) {
		return nil
	}
	return app_errors.ErrChatNotFound
}

func (s *ChatService) AddMessage(ctx context.Context, p *auth.Principal, chatID, content string) (*model.Chat, error) {
	chat, err := s.GetChat(ctx, p, chatID)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, app_errors.ErrInvalidChatData
	}

	chat.Messages = append(chat.Messages,
		model.Message{Role: "user", Content: content, Timestamp: time.Now().UTC()},
		assistantReply(content),
	)
	return s.chatDAO.UpdateChat(ctx, *chat)
}

func (s *ChatService) ListChats(ctx context.Context, p *auth.Principal, page, limit int) ([]*model.Chat, model.Pagination, error) {
	if err := auth.CheckOrganization(p); err != nil {
		return nil, model.Pagination{}, err
	}

	chats, total, err := s.chatDAO.ListChats(ctx, p.OrganizationID, p.ID, page, limit)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return chats, model.NewPagination(page, limit, total), nil
}

func (s *ChatService) DeleteChat(ctx context.Context, p *auth.Principal, chatID string) error {
	chat, err := s.chatDAO.GetChat(ctx, chatID)
	if err != nil {
		return err
	}
	if err := s.authorize(p, chat); err != nil {
		return err
	}
	// Members delete their own chats; reviewers need the owner tier.
	if chat.UserID != p.ID && auth.CheckOrgAdmin(p) != nil {
		return app_errors.ErrChatNotFound
	}
	return s.chatDAO.DeleteChat(ctx, chatID)
}
