package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"study-agent/corpus"
	"study-agent/pipeline"
	"study-agent/utils"
	"study-agent/web/format"
	"study-agent/web/services"
	"study-agent/web/types"
)

type ChatHandler struct {
	pipeline *pipeline.Pipeline
	sessions *services.SessionService
	logger   *zap.Logger
}

func NewChatHandler(p *pipeline.Pipeline, sessions *services.SessionService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		pipeline: p,
		sessions: sessions,
		logger:   logger,
	}
}

// SendMessage runs one conversational turn for the caller's session.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	sessionID := c.MustGet("sessionID").(uuid.UUID)

	var resp pipeline.Response
	h.sessions.WithSession(sessionID, func(sess *pipeline.Session) {
		resp = h.pipeline.Respond(c.Request.Context(), sess, message)
	})

	h.logger.Debug("Chat turn completed",
		zap.String("session_id", sessionID.String()),
		zap.String("kind", string(resp.Kind)),
		zap.Int("studies", len(resp.Studies)))

	c.JSON(http.StatusOK, toChatResponse(resp))
}

func toChatResponse(resp pipeline.Response) types.ChatResponse {
	out := types.ChatResponse{
		ID:          utils.GenerateMessageID(),
		Kind:        string(resp.Kind),
		Text:        resp.Text,
		Interpreted: resp.Interpreted,
	}

	if resp.Analysis {
		out.HTML = format.ToHTML(resp.Text)
	}

	if len(resp.Studies) > 0 {
		out.Studies = make([]types.StudyView, 0, len(resp.Studies))
		for _, s := range resp.Studies {
			out.Studies = append(out.Studies, toStudyView(s))
		}
	}

	if resp.Study != nil {
		out.Study = &types.StudyDetail{
			StudyView: toStudyView(*resp.Study),
			Abstract:  resp.Abstract,
		}
	}

	return out
}

func toStudyView(s corpus.Study) types.StudyView {
	return types.StudyView{
		Project:    s.Project,
		Title:      s.Title,
		Organism:   s.Organism,
		Samples:    s.NSamples,
		Diseases:   s.Diseases,
		Tissues:    s.Tissues,
		Genes:      s.Genes,
		Drugs:      s.Drugs,
		CellTypes:  s.CellTypes,
		Techniques: s.Techniques,
	}
}
