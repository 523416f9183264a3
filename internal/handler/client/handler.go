package client

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/service/client"
	apperrors "github.com/petgroom/admin-api/pkg/errors"
	"github.com/petgroom/admin-api/pkg/httputil"
)

type Handler struct {
	service *client.Service
}

func NewHandler(service *client.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("/clients")
	{
		clients.POST("", h.RegisterClient)
		clients.GET("", h.SearchClients)
		clients.GET("/selection", h.GetSelection)
		clients.DELETE("/selection", h.Deselect)
		clients.GET("/:id", h.GetClient)
		clients.DELETE("/:id", h.DeleteClient)
		clients.POST("/:id/pets", h.AddPet)
		clients.DELETE("/:id/pets/:petId", h.DeletePet)
		clients.POST("/:id/select", h.SelectClient)
		clients.POST("/:id/purchases", h.RecordPurchase)
	}
}

func (h *Handler) RegisterClient(c *gin.Context) {
	var req model.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	created, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, created)
}

// SearchClients filters the directory by the q parameter; without it the
// whole directory comes back in registration order.
func (h *Handler) SearchClients(c *gin.Context) {
	clients, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, clients)
}

func (h *Handler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("id", "must be a valid id"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, found)
}

func (h *Handler) DeleteClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("id", "must be a valid id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, nil)
}

func (h *Handler) AddPet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("id", "must be a valid id"))
		return
	}

	var req model.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	pet, err := h.service.AddPet(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, pet)
}

func (h *Handler) DeletePet(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("id", "must be a valid id"))
		return
	}
	petID, err := uuid.Parse(c.Param("petId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("petId", "must be a valid id"))
		return
	}

	if err := h.service.DeletePet(c.Request.Context(), clientID, petID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, nil)
}

func (h *Handler) SelectClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("id", "must be a valid id"))
		return
	}

	selected, err := h.service.Select(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, selected)
}

func (h *Handler) Deselect(c *gin.Context) {
	h.service.Deselect()
	httputil.RespondWithSuccess(c, http.StatusOK, nil)
}

func (h *Handler) GetSelection(c *gin.Context) {
	selected, err := h.service.Selection(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, selected)
}

func (h *Handler) RecordPurchase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("id", "must be a valid id"))
		return
	}

	updated, err := h.service.RecordPurchase(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, updated)
}
