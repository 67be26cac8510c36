package a2a

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BerylCAtieno/nutrigen/internal/agent"
	"github.com/BerylCAtieno/nutrigen/internal/models"
	"github.com/BerylCAtieno/nutrigen/internal/nutrition"
)

// Chatbot answers a single nutrition question.
type Chatbot interface {
	SubmitChatbotQuestion(ctx context.Context, question string) (*models.Artifact, error)
}

type A2AHandler struct {
	chatbot Chatbot
	now     func() time.Time
}

func NewA2AHandler(chatbot Chatbot) *A2AHandler {
	return &A2AHandler{
		chatbot: chatbot,
		now:     time.Now,
	}
}

// ServeAgentCard serves the embedded agent card.
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("agent card not available")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

// HandleNutrition processes A2A JSON-RPC messages. Errors are reported in the
// JSON-RPC envelope with status 200.
func (h *A2AHandler) HandleNutrition(c *gin.Context) {
	logger := log.Ctx(c.Request.Context())

	var rpcReq JSONRPCRequest
	if err := c.ShouldBindJSON(&rpcReq); err != nil {
		logger.Warn().Err(err).Msg("failed to decode JSON-RPC request")
		h.sendError(c, nil, "Parse error", CodeParseError)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.sendError(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		h.sendError(c, rpcReq.ID, "Method not found: "+rpcReq.Method, CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var params MessageParams
	if err := json.Unmarshal(rpcReq.Params, &params); err != nil {
		h.sendError(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	question := extractQuestion(params.Message)
	id := taskIDFrom(rpcReq.ID)
	log.Ctx(c.Request.Context()).Info().Str("task_id", id).Int("question_chars", len(question)).Msg("handling nutrition task")

	art, err := h.chatbot.SubmitChatbotQuestion(context.WithoutCancel(c.Request.Context()), question)
	switch {
	case err != nil:
		h.sendResult(c, rpcReq.ID, h.statusResult(id, StateFailed, nutrition.NoticeFor(err).Text))
	case art == nil:
		h.sendResult(c, rpcReq.ID, h.statusResult(id, StateInputRequired, "Please ask a nutrition or diet question."))
	default:
		h.sendResult(c, rpcReq.ID, h.completedResult(id, art))
	}
}

// taskIDFrom derives the task id from the request id: a string id is used as
// is, a number keeps its literal form, and a missing or null id gets a
// fresh uuid.
func taskIDFrom(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	if t := strings.TrimSpace(string(raw)); t != "" && t != "null" && t != `""` {
		return t
	}
	return uuid.New().String()
}

// extractQuestion joins the text parts of msg. Data parts carrying a
// conversation history contribute their most recent text entry.
func extractQuestion(msg A2AMessage) string {
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if t := strings.TrimSpace(part.Text); t != "" {
				texts = append(texts, t)
			}
		case "data":
			var history []MessagePart
			if err := json.Unmarshal(part.Data, &history); err != nil {
				continue
			}
			for i := len(history) - 1; i >= 0; i-- {
				if t := strings.TrimSpace(history[i].Text); history[i].Kind == "text" && t != "" {
					texts = append(texts, t)
					break
				}
			}
		}
	}

	return strings.Join(texts, " ")
}

func (h *A2AHandler) completedResult(taskID string, art *models.Artifact) *TaskResult {
	return &TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(h.now()),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(art.Text)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: art.ID,
				Name:       "Nutrition Answer",
				Parts:      []MessagePart{TextPart(art.Text)},
			},
		},
	}
}

func (h *A2AHandler) statusResult(taskID, state, text string) *TaskResult {
	return &TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(h.now()),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

func (h *A2AHandler) sendResult(c *gin.Context, id json.RawMessage, result *TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendError(c *gin.Context, id json.RawMessage, message string, code int) {
	log.Ctx(c.Request.Context()).Warn().Int("code", code).Str("message", message).Msg("sending JSON-RPC error")
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}
