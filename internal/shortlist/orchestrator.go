package shortlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/llm"
	"talentmatch/internal/search"
	"talentmatch/internal/storage"
)

// Canned assistant replies for the degraded paths. These are what the
// recruiter sees when a stage comes up empty or fails; they never carry
// internal error detail.
const (
	msgNoMatches = "I couldn't find any candidates matching that query. " +
		"Try rephrasing it or broadening the skills you're looking for."
	msgProfilesUnavailable = "I found potential matches, but their profiles couldn't be loaded right now. " +
		"Please try again shortly."
	msgNotConfigured = "The shortlisting assistant isn't configured on this server, so I can't rank the matches. " +
		"Ask an administrator to set up the language model integration."
	msgAssistantFailed = "Something went wrong while preparing your shortlist. " +
		"Please try again shortly."
)

// Responder produces the assistant reply for a recruiter chat message.
type Responder interface {
	// Respond records the recruiter's message, runs the shortlist flow
	// and records exactly one assistant reply. It returns the persisted
	// user message; the assistant reply is read back via the message
	// listing.
	Respond(ctx context.Context, chat *storage.ChatRecord, body string) (*storage.MessageRecord, error)
}

// Orchestrator turns a recruiter chat message into a persisted
// shortlist reply: search, profile join, grounded model call, message
// persistence. Every request ends with exactly one assistant message,
// whichever stage decided its content.
type Orchestrator struct {
	chats         storage.ChatStore
	engine        search.Engine
	provider      llm.Provider
	searchLimit   int // over-fetch width handed to the search engine
	shortlistSize int // upper bound on picks the model is asked for
	baseURL       string
}

// NewOrchestrator creates a shortlisting orchestrator. searchLimit
// should be wider than shortlistSize so the model has material to choose
// from. baseURL is the public base used to build profile links.
func NewOrchestrator(
	chats storage.ChatStore,
	engine search.Engine,
	provider llm.Provider,
	searchLimit int,
	shortlistSize int,
	baseURL string,
) *Orchestrator {
	return &Orchestrator{
		chats:         chats,
		engine:        engine,
		provider:      provider,
		searchLimit:   searchLimit,
		shortlistSize: shortlistSize,
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

// Respond implements Responder.
//
// The user message is persisted first and verbatim; if that write fails
// the request fails and nothing else happens. Everything after it
// resolves to some assistant message body, degraded or not, which is
// appended as the single assistant reply for this request.
func (o *Orchestrator) Respond(ctx context.Context, chat *storage.ChatRecord, body string) (*storage.MessageRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	userMsg := &storage.MessageRecord{
		ChatID: chat.ID,
		Role:   storage.MessageRoleUser,
		Body:   body,
	}
	if err := o.chats.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to persist user message: %w", err)
	}

	reply := o.composeReply(ctx, body)

	assistantMsg := &storage.MessageRecord{
		ChatID: chat.ID,
		Role:   storage.MessageRoleAssistant,
		Body:   reply,
	}
	if err := o.chats.AppendMessage(ctx, assistantMsg); err != nil {
		logger.ErrorContext(ctx, "failed to persist assistant message", "chat_id", chat.ID, "error", err)
		return nil, fmt.Errorf("failed to persist assistant message: %w", err)
	}

	logger.InfoContext(ctx, "shortlist reply recorded", "chat_id", chat.ID, "reply_length", len(reply))
	return userMsg, nil
}

// composeReply runs the search and model stages and always produces a
// reply body. Failures pick a canned degraded body instead of
// propagating.
func (o *Orchestrator) composeReply(ctx context.Context, query string) string {
	logger := contextutil.LoggerFromContext(ctx)

	outcome := o.engine.Search(ctx, query, o.searchLimit)
	if outcome.Matches == 0 {
		logger.InfoContext(ctx, "shortlist degraded: no matches")
		return msgNoMatches
	}
	if len(outcome.Results) == 0 {
		logger.WarnContext(ctx, "shortlist degraded: matches without profiles", "matches", outcome.Matches)
		return msgProfilesUnavailable
	}

	answer, err := o.provider.Chat(ctx, o.systemPrompt(len(outcome.Results)), o.userPrompt(query, outcome.Results))
	if err != nil {
		if errors.Is(err, llm.ErrUnconfigured) {
			logger.WarnContext(ctx, "shortlist degraded: assistant not configured")
			return msgNotConfigured
		}
		logger.ErrorContext(ctx, "shortlist degraded: model call failed", "error", err)
		return msgAssistantFailed
	}
	if strings.TrimSpace(answer) == "" {
		logger.ErrorContext(ctx, "shortlist degraded: model returned empty output")
		return msgAssistantFailed
	}
	return answer
}
