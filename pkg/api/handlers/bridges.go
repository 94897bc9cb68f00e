package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkrogh/bridgeway/pkg/api/types"
	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
)

// BridgesHandler exposes registered bridge records and their options
type BridgesHandler struct {
	store   db.BridgeStore
	options *flow.OptionsNegotiator
}

// NewBridgesHandler creates a new bridges handler
func NewBridgesHandler(store db.BridgeStore, options *flow.OptionsNegotiator) *BridgesHandler {
	return &BridgesHandler{store: store, options: options}
}

// List handles GET /bridges
// @Summary      List registered bridges
// @Tags         bridges
// @Produce      json
// @Success      200  {object}  types.ListBridgesResponse
// @Router       /bridges [get]
func (h *BridgesHandler) List(c *gin.Context) {
	bridges, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "store_error", Message: err.Error(),
		})
		return
	}

	infos := make([]types.BridgeInfo, 0, len(bridges))
	for _, b := range bridges {
		infos = append(infos, bridgeInfo(b))
	}
	c.JSON(http.StatusOK, types.ListBridgesResponse{Bridges: infos, Count: len(infos)})
}

// Get handles GET /bridges/:id
// @Summary      Get a registered bridge
// @Tags         bridges
// @Produce      json
// @Param        id  path  string  true  "Canonical bridge id"
// @Success      200  {object}  types.BridgeResponse
// @Failure      404  {object}  types.ErrorResponse  "Unknown bridge"
// @Router       /bridges/{id} [get]
func (h *BridgesHandler) Get(c *gin.Context) {
	b, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, db.ErrBridgeNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "bridge_not_found", Message: "no registered bridge with that id",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "store_error", Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.BridgeResponse{Bridge: bridgeInfo(b)})
}

// Delete handles DELETE /bridges/:id
// @Summary      Remove a registered bridge
// @Tags         bridges
// @Produce      json
// @Param        id  path  string  true  "Canonical bridge id"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse  "Unknown bridge"
// @Router       /bridges/{id} [delete]
func (h *BridgesHandler) Delete(c *gin.Context) {
	err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, db.ErrBridgeNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "bridge_not_found", Message: "no registered bridge with that id",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "store_error", Message: err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetOptions handles GET /bridges/:id/options
// @Summary      Get bridge behavior options
// @Tags         bridges
// @Produce      json
// @Param        id  path  string  true  "Canonical bridge id"
// @Success      200  {object}  types.OptionsResponse
// @Failure      404  {object}  types.ErrorResponse  "Unknown bridge"
// @Router       /bridges/{id}/options [get]
func (h *BridgesHandler) GetOptions(c *gin.Context) {
	opts, err := h.options.Current(c.Request.Context(), c.Param("id"))
	if errors.Is(err, db.ErrBridgeNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "bridge_not_found", Message: "no registered bridge with that id",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "store_error", Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, optionsResponse(opts))
}

// SetOptions handles PUT /bridges/:id/options
// @Summary      Replace bridge behavior options
// @Description  Full replace: all three toggles must be provided
// @Tags         bridges
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Canonical bridge id"
// @Param        request  body      types.OptionsRequest  true  "New option values"
// @Success      200      {object}  types.OptionsResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid options"
// @Failure      404      {object}  types.ErrorResponse  "Unknown bridge"
// @Router       /bridges/{id}/options [put]
func (h *BridgesHandler) SetOptions(c *gin.Context) {
	var req types.OptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "all three options are required",
		})
		return
	}

	opts, err := h.options.Apply(c.Request.Context(), c.Param("id"), db.Options{
		AllowVirtualSensors: *req.AllowVirtualSensors,
		AllowGroups:         *req.AllowGroups,
		AllowNewDevices:     *req.AllowNewDevices,
	})
	if errors.Is(err, db.ErrBridgeNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "bridge_not_found", Message: "no registered bridge with that id",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "store_error", Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, optionsResponse(opts))
}

func bridgeInfo(b *db.Bridge) types.BridgeInfo {
	return types.BridgeInfo{
		ID:        b.ID,
		Host:      b.Host,
		Port:      b.Port,
		Source:    b.Source,
		Options:   optionsResponse(b.Options),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func optionsResponse(o db.Options) types.OptionsResponse {
	return types.OptionsResponse{
		AllowVirtualSensors: o.AllowVirtualSensors,
		AllowGroups:         o.AllowGroups,
		AllowNewDevices:     o.AllowNewDevices,
	}
}
