// api/controller/chat_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/service"
	"github.com/dev-anuragk/assistly/api/util"
	helper_util "github.com/dev-anuragk/assistly/api/util/helper"
)

type ChatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

type createChatRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
}

type addMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateChat endpoint
func (cc *ChatController) CreateChat(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid chat data", app_errors.ErrInvalidChatData)
		return
	}

	chat, err := cc.chatService.CreateChat(c, principal, req.Title, req.Message)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusCreated, "Chat created", chat)
}

// GetChat endpoint
func (cc *ChatController) GetChat(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	chat, err := cc.chatService.GetChat(c, principal, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Chat retrieved", chat)
}

// AddMessage endpoint
func (cc *ChatController) AddMessage(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req addMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid message data", app_errors.ErrInvalidChatData)
		return
	}

	chat, err := cc.chatService.AddMessage(c, principal, c.Param("id"), req.Content)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Message added", chat)
}

// ListChats endpoint
func (cc *ChatController) ListChats(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	page, limit, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	chats, pagination, err := cc.chatService.ListChats(c, principal, page, limit)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithPagination(c, "Chats retrieved", chats, pagination)
}

// DeleteChat endpoint
func (cc *ChatController) DeleteChat(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := cc.chatService.DeleteChat(c, principal, c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Chat deleted", nil)
}
