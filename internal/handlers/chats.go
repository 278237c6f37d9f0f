package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/shortlist"
	"talentmatch/internal/storage"
)

// defaultChatTitle is assigned at creation and replaced by an
// auto-derived title on the first message.
const defaultChatTitle = "New chat"

// titleMaxLen caps auto-derived chat titles.
const titleMaxLen = 60

// ChatsHandler handles chat thread and message requests.
type ChatsHandler struct {
	chats     storage.ChatStore
	responder shortlist.Responder
	markdown  goldmark.Markdown
}

// NewChatsHandler creates a new ChatsHandler.
func NewChatsHandler(chats storage.ChatStore, responder shortlist.Responder) *ChatsHandler {
	return &ChatsHandler{
		chats:     chats,
		responder: responder,
		// Assistant replies are markdown. Raw HTML in them stays escaped.
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// CreateChatRequest represents the payload for opening a chat thread.
//
// swagger:model CreateChatRequest
type CreateChatRequest struct {
	Title string `json:"title,omitempty"`
}

// PostMessageRequest represents a recruiter message sent into a chat.
//
// swagger:model PostMessageRequest
type PostMessageRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents a chat thread in HTTP responses.
//
// swagger:model ChatResponse
type ChatResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MessageResponse represents a chat message in HTTP responses.
//
// swagger:model MessageResponse
type MessageResponse struct {
	ID     string `json:"id"`
	ChatID string `json:"chat_id"`
	Role   string `json:"role"`
	Body   string `json:"body"`

	// BodyHTML carries the markdown body rendered to HTML, only when
	// requested with ?format=html.
	BodyHTML string `json:"body_html,omitempty"`

	CreatedAt string `json:"created_at"`
}

// MessagesResponse wraps a chat's message history.
//
// swagger:model MessagesResponse
type MessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

func makeChatResponse(c *storage.ChatRecord) ChatResponse {
	return ChatResponse{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func makeMessageResponse(m *storage.MessageRecord) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		Role:      m.Role,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Create handles HTTP requests for opening a chat thread.
//
// swagger:route POST /api/chats createChat
//
// # Open a chat thread
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'201':
//	  description: Chat created
//	  schema:
//	    "$ref": "#/definitions/ChatResponse"
//	'403':
//	  description: Caller is not a confirmed recruiter
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ChatsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	caller, ok := requireConfirmedRole(w, r, storage.RoleRecruiter)
	if !ok {
		return
	}

	var req CreateChatRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WarnContext(ctx, "invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultChatTitle
	}

	chat := &storage.ChatRecord{
		RecruiterID: caller.ID,
		Title:       title,
	}
	if err := h.chats.CreateChat(ctx, chat); err != nil {
		handleStoreError(w, ctx, err, "Failed to create chat")
		return
	}

	created, err := h.chats.GetChat(ctx, chat.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to load created chat")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, makeChatResponse(created))
}

// List handles HTTP requests for listing the caller's chats, most
// recently active first.
func (h *ChatsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireConfirmedRole(w, r, storage.RoleRecruiter)
	if !ok {
		return
	}

	chats, err := h.chats.ListChatsByRecruiter(ctx, caller.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to list chats")
		return
	}

	resp := make([]ChatResponse, 0, len(chats))
	for i := range chats {
		resp = append(resp, makeChatResponse(&chats[i]))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Delete handles HTTP requests for deleting a chat and its messages.
func (h *ChatsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireConfirmedRole(w, r, storage.RoleRecruiter)
	if !ok {
		return
	}

	chat, ok := h.ownedChat(w, r, caller)
	if !ok {
		return
	}

	if err := h.chats.DeleteChat(ctx, chat.ID); err != nil {
		handleStoreError(w, ctx, err, "Failed to delete chat")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMessages handles HTTP requests for reading a chat's history.
//
// swagger:route GET /api/chats/{chatID}/messages listMessages
//
// # List chat messages
//
// Returns the full message history in chronological order. With
// ?format=html each message body is additionally rendered from markdown
// to HTML.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Message history
//	  schema:
//	    "$ref": "#/definitions/MessagesResponse"
//	'404':
//	  description: Chat not found
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ChatsHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	caller, ok := requireConfirmedRole(w, r, storage.RoleRecruiter)
	if !ok {
		return
	}

	chat, ok := h.ownedChat(w, r, caller)
	if !ok {
		return
	}

	messages, err := h.chats.ListMessages(ctx, chat.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to list messages")
		return
	}

	renderHTML := strings.EqualFold(r.URL.Query().Get("format"), "html")

	resp := MessagesResponse{Messages: make([]MessageResponse, 0, len(messages))}
	for i := range messages {
		msg := makeMessageResponse(&messages[i])
		if renderHTML {
			html, err := h.renderMarkdown([]byte(messages[i].Body))
			if err != nil {
				logger.WarnContext(ctx, "failed to render message body", "message_id", messages[i].ID, "error", err)
			} else {
				msg.BodyHTML = html
			}
		}
		resp.Messages = append(resp.Messages, msg)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// PostMessage handles HTTP requests for sending a recruiter message.
//
// The message is persisted and answered by the shortlisting assistant;
// the response carries the recruiter's own stored message, and the
// assistant's reply lands in the history for the next fetch.
//
// swagger:route POST /api/chats/{chatID}/messages postMessage
//
// # Send a message
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'202':
//	  description: Message stored, assistant reply appended to the history
//	  schema:
//	    "$ref": "#/definitions/MessageResponse"
//	'400':
//	  description: Empty message
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'404':
//	  description: Chat not found
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ChatsHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	caller, ok := requireConfirmedRole(w, r, storage.RoleRecruiter)
	if !ok {
		return
	}

	chat, ok := h.ownedChat(w, r, caller)
	if !ok {
		return
	}

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	userMsg, err := h.responder.Respond(ctx, chat, req.Message)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to process message")
		return
	}

	// First real message names the thread. Title failures are cosmetic.
	if chat.Title == "" || chat.Title == defaultChatTitle {
		title := deriveChatTitle(req.Message)
		if err := h.chats.UpdateChatTitle(ctx, chat.ID, title); err != nil {
			logger.WarnContext(ctx, "failed to set chat title", "chat_id", chat.ID, "error", err)
		}
	}

	writeJSON(ctx, w, http.StatusAccepted, makeMessageResponse(userMsg))
}

// ownedChat loads the chat from the URL and enforces ownership. Chats
// belonging to other recruiters read as not found.
func (h *ChatsHandler) ownedChat(w http.ResponseWriter, r *http.Request, caller contextutil.Caller) (*storage.ChatRecord, bool) {
	ctx := r.Context()

	chatID := chi.URLParam(r, "chatID")
	chat, err := h.chats.GetChat(ctx, chatID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to load chat")
		return nil, false
	}
	if chat.RecruiterID != caller.ID {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "chat access denied",
			"chat_id", chatID, "caller_id", caller.ID)
		writeError(w, http.StatusNotFound, "Not found")
		return nil, false
	}
	return chat, true
}

func (h *ChatsHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// deriveChatTitle condenses the first message into a short title.
func deriveChatTitle(message string) string {
	title := strings.Join(strings.Fields(message), " ")
	runes := []rune(title)
	if len(runes) > titleMaxLen {
		title = strings.TrimSpace(string(runes[:titleMaxLen-3])) + "..."
	}
	if title == "" {
		title = defaultChatTitle
	}
	return title
}
