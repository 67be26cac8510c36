package a2a

import (
	"encoding/json"
	"time"
)

// JSON-RPC types
// ID is kept raw: JSON-RPC allows string, number or null, and the response
// must echo it unchanged.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  *TaskResult     `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)

// Message types
type MessageParams struct {
	Message       A2AMessage           `json:"message"`
	Configuration MessageConfiguration `json:"configuration"`
}

type A2AMessage struct {
	Kind      string        `json:"kind"`
	Role      string        `json:"role"`
	Parts     []MessagePart `json:"parts"`
	MessageID string        `json:"messageId,omitempty"`
	TaskID    string        `json:"taskId,omitempty"`
}

type MessagePart struct {
	Kind string          `json:"kind"`
	Text string          `json:"text,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type MessageConfiguration struct {
	AcceptedOutputModes []string `json:"acceptedOutputModes,omitempty"`
	HistoryLength       int      `json:"historyLength,omitempty"`
	Blocking            bool     `json:"blocking,omitempty"`
}

// Task types
type TaskResult struct {
	ID        string     `json:"id"`
	ContextID string     `json:"contextId,omitempty"`
	Status    TaskStatus `json:"status"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
	Kind      string     `json:"kind"`
}

type TaskStatus struct {
	State     string      `json:"state"`
	Timestamp string      `json:"timestamp"`
	Message   *A2AMessage `json:"message,omitempty"`
}

type Artifact struct {
	ArtifactID string        `json:"artifactId"`
	Name       string        `json:"name"`
	Parts      []MessagePart `json:"parts"`
}

func TextPart(text string) MessagePart {
	return MessagePart{
		Kind: "text",
		Text: text,
	}
}

func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Task states
const (
	StateCompleted     = "completed"
	StateFailed        = "failed"
	StateInputRequired = "input-required"
)

// Message roles
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)
