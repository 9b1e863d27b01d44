package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nikogura/ats-scorer/pkg/resume"
	"github.com/nikogura/ats-scorer/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// MaxBatchSize bounds the resumes accepted by one batch request.
const MaxBatchSize = 50

const maxJobDescriptionLength = 100000

// ScoreRequest is the body of POST /api/score.
type ScoreRequest struct {
	Resume         json.RawMessage `json:"resume" binding:"required"`
	JobDescription string          `json:"job_description" binding:"max=100000"`
}

// AnalyzeRequest is the body of POST /api/analyze-resume. The resume is sent as
// either resume (an object) or resume_content (an object, or a string holding
// resume JSON). A job description is required.
type AnalyzeRequest struct {
	Resume         json.RawMessage `json:"resume" binding:"required_without=ResumeContent"`
	ResumeContent  json.RawMessage `json:"resume_content" binding:"required_without=Resume"`
	JobDescription string          `json:"job_description" binding:"required,max=100000"`
}

// BatchRequest is the body of POST /api/score/batch.
type BatchRequest struct {
	JobDescription string            `json:"job_description" binding:"max=100000"`
	Resumes        []json.RawMessage `json:"resumes" binding:"required,min=1,max=50,dive,required"`
}

// KeywordsRequest is the body of POST /api/extract-job-keywords.
type KeywordsRequest struct {
	JobDescription string `json:"job_description" binding:"required,max=100000"`
}

// BatchResponse is the response of POST /api/score/batch, in request order.
type BatchResponse struct {
	Results []scorer.Result `json:"results"`
}

// ScoreHandler serves the scoring endpoints.
type ScoreHandler struct {
	scorer *scorer.Scorer
}

// NewScoreHandler creates a handler backed by s.
func NewScoreHandler(s *scorer.Scorer) (h *ScoreHandler) {
	h = &ScoreHandler{scorer: s}
	return h
}

// Health handles GET /health.
func (h *ScoreHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ats-scorer",
		"time":    time.Now().UTC(),
	})
}

// Score handles POST /api/score.
func (h *ScoreHandler) Score(c *gin.Context) {
	var req ScoreRequest
	if !bind(c, &req, describeValidation) {
		return
	}

	result, err := h.scorer.ScoreJSON(req.Resume, req.JobDescription)
	if err != nil {
		h.respondScoreError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Analyze handles POST /api/analyze-resume.
func (h *ScoreHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if !bind(c, &req, describeAnalyzeValidation) {
		return
	}

	raw := []byte(req.Resume)
	prefix := ""
	if len(raw) == 0 {
		prefix = "resume_content"
		raw = []byte(req.ResumeContent)

		// A string carries the resume JSON as text.
		var text string
		if json.Unmarshal(raw, &text) == nil {
			raw = []byte(text)
		}
	}

	result, err := h.scorer.ScoreJSON(raw, req.JobDescription)
	if err != nil {
		h.respondScoreError(c, err, prefix)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExtractKeywords handles POST /api/extract-job-keywords. Keywords are the
// distinct lower-cased words of four or more characters, in order of first
// appearance: the same set the keyword score matches against.
func (h *ScoreHandler) ExtractKeywords(c *gin.Context) {
	var req KeywordsRequest
	if !bind(c, &req, describeKeywordsValidation) {
		return
	}

	keywords := h.scorer.Lexicon().Keywords(req.JobDescription)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(keywords),
		"keywords": keywords,
	})
}

// ScoreBatch handles POST /api/score/batch. Every resume is decoded before any is
// scored, so a shape error anywhere rejects the whole batch.
func (h *ScoreHandler) ScoreBatch(c *gin.Context) {
	var req BatchRequest
	if !bind(c, &req, describeValidation) {
		return
	}

	resumes := make([]resume.Data, len(req.Resumes))
	for i, raw := range req.Resumes {
		data, err := resume.Decode(raw)
		if err != nil {
			h.respondScoreError(c, err, fmt.Sprintf("resumes[%d]", i))
			return
		}
		resumes[i] = data
	}

	results := make([]scorer.Result, len(resumes))
	g, _ := errgroup.WithContext(c.Request.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range resumes {
		i := i
		g.Go(func() (err error) {
			results[i], err = h.scorer.Score(resumes[i], req.JobDescription)
			return err
		})
	}

	err := g.Wait()
	if err != nil {
		h.respondScoreError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, BatchResponse{Results: results})
}

// Verbs handles GET /api/lexicon/verbs.
func (h *ScoreHandler) Verbs(c *gin.Context) {
	verbs := h.scorer.Lexicon().ActionVerbs()
	c.JSON(http.StatusOK, gin.H{
		"count": len(verbs),
		"verbs": verbs,
	})
}

// bind decodes and validates a JSON body, writing the error response itself when
// it fails. describe turns a validation failure into the error message.
func bind(c *gin.Context, req interface{}, describe func(error) string) (ok bool) {
	err := c.ShouldBindJSON(req)
	if err == nil {
		ok = true
		return ok
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit),
		})
		return ok
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"error": describe(err)})
		return ok
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a JSON object"})
	return ok
}

func (h *ScoreHandler) respondScoreError(c *gin.Context, err error, prefix string) {
	var vErr *resume.ValidationError
	if errors.As(err, &vErr) {
		field := vErr.Field
		if prefix != "" {
			if field == "resume" {
				field = prefix
			} else {
				field = prefix + "." + field
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": vErr.Message,
			"field": field,
		})
		return
	}

	log.Error().Err(err).Str("request_id", getRequestID(c)).Msg("Scoring failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score resume"})
}

func describeValidation(err error) (message string) {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		message = "Invalid request"
		return message
	}

	fe := fieldErrors[0]
	switch fe.Field() {
	case "Resume":
		message = "resume is required"
	case "JobDescription":
		message = fmt.Sprintf("job_description must be at most %d characters", maxJobDescriptionLength)
	default:
		if fe.Tag() == "max" {
			message = fmt.Sprintf("at most %d resumes per batch", MaxBatchSize)
		} else {
			message = "resumes must be a non-empty list of resume objects"
		}
	}
	return message
}

func describeAnalyzeValidation(err error) (message string) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 && fieldErrors[0].Tag() == "max" {
		message = fmt.Sprintf("job_description must be at most %d characters", maxJobDescriptionLength)
		return message
	}

	message = "Resume content and job description are required"
	return message
}

func describeKeywordsValidation(err error) (message string) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 && fieldErrors[0].Tag() == "max" {
		message = fmt.Sprintf("job_description must be at most %d characters", maxJobDescriptionLength)
		return message
	}

	message = "Job description is required"
	return message
}
