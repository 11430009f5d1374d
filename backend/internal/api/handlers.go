package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
)

type registerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Age         int    `json:"age" binding:"required,gte=18"`
	Description string `json:"description"`
}

type preferencesRequest struct {
	Answers map[string][]string `json:"answers" binding:"required,min=1,dive,keys,category,endkeys,min=1"`
}

type likeRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

type likeResponse struct {
	IsMatch bool   `json:"is_match"`
	Message string `json:"message"`
}

func (h *Handler) questionnaireOptions(c *gin.Context) {
	options, err := h.engine.QuestionnaireOptions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	type category struct {
		Category    catalog.Category `json:"category"`
		Cardinality string           `json:"cardinality"`
		MaxChoices  int              `json:"max_choices,omitempty"`
		Options     []string         `json:"options"`
	}
	out := make([]category, 0, len(catalog.All()))
	for _, def := range catalog.All() {
		names := options[def.Category]
		if names == nil {
			names = []string{}
		}
		out = append(out, category{
			Category:    def.Category,
			Cardinality: def.Cardinality.String(),
			MaxChoices:  def.MaxChoices,
			Options:     names,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := h.engine.Register(c.Request.Context(), model.Registration{
		Name:        req.Name,
		Email:       req.Email,
		Age:         req.Age,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.engine.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) recordPreferences(c *gin.Context) {
	var req preferencesRequest
	if !h.bind(c, &req) {
		return
	}

	answers := make(model.Answers, len(req.Answers))
	for category, names := range req.Answers {
		answers[catalog.Category(category)] = names
	}
	if err := h.engine.Record(c.Request.Context(), c.Param("id"), answers); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) preferences(c *gin.Context) {
	answers, err := h.engine.Preferences(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": answers})
}

func (h *Handler) recommendations(c *gin.Context) {
	recs, err := h.engine.Recommend(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func (h *Handler) like(c *gin.Context) {
	var req likeRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.engine.Like(c.Request.Context(), c.Param("id"), req.TargetID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := likeResponse{IsMatch: result.IsMatch, Message: "Like recorded"}
	if result.IsMatch {
		resp.Message = "It's a match!"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) matches(c *gin.Context) {
	matches, err := h.engine.Matches(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (h *Handler) dashboard(c *gin.Context) {
	d, err := h.engine.Dashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
