// Package queue scores resumes delivered over RabbitMQ.
package queue

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nikogura/ats-scorer/pkg/resume"
	"github.com/nikogura/ats-scorer/pkg/scorer"
	"github.com/pkg/errors"
)

// Request is a scoring request message.
type Request struct {
	ID             string          `json:"id"`
	Resume         json.RawMessage `json:"resume"`
	JobDescription string          `json:"job_description"`
}

// Reply is published for every request, carrying either a result or an error.
type Reply struct {
	ID     string         `json:"id"`
	Result *scorer.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
	Field  string         `json:"field,omitempty"`
}

// Handler turns request bodies into reply bodies. It has no broker dependency.
type Handler struct {
	scorer *scorer.Scorer
}

// NewHandler creates a handler backed by s.
func NewHandler(s *scorer.Scorer) (h *Handler) {
	h = &Handler{scorer: s}
	return h
}

// Handle scores one message body and returns the encoded reply. It never fails:
// malformed messages produce an error reply.
func (h *Handler) Handle(body []byte) (out []byte) {
	out = h.encode(h.Process(body))
	return out
}

func (h *Handler) encode(reply Reply) (out []byte) {
	// Reply holds only JSON-safe values.
	out, _ = json.Marshal(reply)
	return out
}

// Process scores one message body. Requests without an id are assigned one.
func (h *Handler) Process(body []byte) (reply Reply) {
	var req Request
	err := json.Unmarshal(body, &req)
	if err != nil {
		reply = Reply{ID: uuid.NewString(), Error: "malformed message: " + err.Error()}
		return reply
	}

	reply.ID = req.ID
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}

	result, err := h.scorer.ScoreJSON(req.Resume, req.JobDescription)
	if err != nil {
		var vErr *resume.ValidationError
		if errors.As(err, &vErr) {
			reply.Error = vErr.Message
			reply.Field = vErr.Field
			return reply
		}
		reply.Error = err.Error()
		return reply
	}

	reply.Result = &result
	return reply
}
