// api/dao/chat_dao.go
package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
)

type ChatDAO struct {
	Driver neo4j.Driver
}

func NewChatDAO(driver neo4j.Driver) *ChatDAO {
	return &ChatDAO{Driver: driver}
}

func chatProps(chat model.Chat) map[string]interface{} {
	messagesJSON, _ := json.Marshal(chat.Messages)
	metadataJSON, _ := json.Marshal(chat.Metadata)
	return map[string]interface{}{
		"organizationID": chat.OrganizationID,
		"userID":         chat.UserID,
		"title":          chat.Title,
		"status":         string(chat.Status),
		"messages":       string(messagesJSON),
		"metadata":       string(metadataJSON),
		"updatedAt":      time.Now().Format(time.RFC3339),
	}
}

func (dao *ChatDAO) CreateChat(ctx context.Context, chat model.Chat) (string, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE (c:Chat {id: $id})
        SET c += $props, c.createdAt = $createdAt
        RETURN c.id as id
        `
		params := map[string]interface{}{
			"id":        chat.ID,
			"props":     chatProps(chat),
			"createdAt": time.Now().Format(time.RFC3339),
		}
		created, err := transaction.Run(query, params)
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if created.Next() {
			return created.Record().Values[0], nil
		}
		return nil, app_errors.ErrInternalServer
	})
	if err != nil {
		logger.Error("Failed to create chat", zap.Error(err), zap.String("userID", chat.UserID))
		return "", err
	}
	return fmt.Sprintf("%v", result), nil
}

func (dao *ChatDAO) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (c:Chat {id: $id})
    RETURN c
    `
	result, err := session.Run(query, map[string]interface{}{"id": chatID})
	if err != nil {
		logger.Error("Failed to execute get chat query", zap.Error(err), zap.String("chatID", chatID))
		return nil, app_errors.ErrDatabaseOperation
	}
	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		chat, err := mapNodeToChat(node)
		if err != nil {
			return nil, app_errors.ErrInternalServer
		}
		return chat, nil
	}
	return nil, app_errors.ErrChatNotFound
}

func (dao *ChatDAO) UpdateChat(ctx context.Context, chat model.Chat) (*model.Chat, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	var updated *model.Chat
	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (c:Chat {id: $id})
        SET c += $props
        RETURN c
        `
		result, err := transaction.Run(query, map[string]interface{}{
			"id":    chat.ID,
			"props": chatProps(chat),
		})
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			mapped, err := mapNodeToChat(node)
			if err != nil {
				return nil, fmt.Errorf("failed to map chat node to struct: %w", err)
			}
			updated = mapped
			return nil, nil
		}
		return nil, app_errors.ErrChatNotFound
	})
	if err != nil {
		logger.Error("Failed to update chat", zap.Error(err), zap.String("chatID", chat.ID))
		return nil, err
	}
	return updated, nil
}

func (dao *ChatDAO) DeleteChat(ctx context.Context, chatID string) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (c:Chat {id: $id})
        DETACH DELETE c
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": chatID})
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		summary, err := result.Consume()
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, app_errors.ErrChatNotFound
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to delete chat", zap.Error(err), zap.String("chatID", chatID))
	}
	return err
}

// ListChats pages through one user's chats inside one organization.
func (dao *ChatDAO) ListChats(ctx context.Context, organizationID, userID string, page, limit int) ([]*model.Chat, int64, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	params := map[string]interface{}{
		"organizationID": organizationID,
		"userID":         userID,
		"skip":           (page - 1) * limit,
		"limit":          limit,
	}

	query := `
    MATCH (c:Chat {organizationID: $organizationID, userID: $userID})
    RETURN c
    ORDER BY c.updatedAt DESC
    SKIP $skip LIMIT $limit
    `
	result, err := session.Run(query, params)
	if err != nil {
		logger.Error("Failed to list chats", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	var chats []*model.Chat
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		chat, err := mapNodeToChat(node)
		if err != nil {
			return nil, 0, app_errors.ErrInternalServer
		}
		chats = append(chats, chat)
	}

	countResult, err := session.Run(`
    MATCH (c:Chat {organizationID: $organizationID, userID: $userID})
    RETURN count(c) as total
    `, params)
	if err != nil {
		return nil, 0, app_errors.ErrDatabaseOperation
	}
	var total int64
	if countResult.Next() {
		total = countResult.Record().Values[0].(int64)
	}

	return chats, total, nil
}

func mapNodeToChat(node neo4j.Node) (*model.Chat, error) {
	props := node.Props

	chat := &model.Chat{
		ID:             stringProp(props, "id"),
		OrganizationID: stringProp(props, "organizationID"),
		UserID:         stringProp(props, "userID"),
		Title:          stringProp(props, "title"),
		Status:         model.ChatStatus(stringProp(props, "status")),
	}
	if raw := stringProp(props, "messages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &chat.Messages); err != nil {
			return nil, fmt.Errorf("invalid messages: %w", err)
		}
	}
	if raw := stringProp(props, "metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &chat.Metadata); err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
	}

	var err error
	if chat.CreatedAt, err = timeProp(props, "createdAt"); err != nil {
		return nil, err
	}
	if chat.UpdatedAt, err = timeProp(props, "updatedAt"); err != nil {
		return nil, err
	}
	return chat, nil
}
