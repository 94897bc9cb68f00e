package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkrogh/bridgeway/pkg/api/types"
	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
)

// PairingHandler exposes the step-oriented pairing flow API
type PairingHandler struct {
	manager *flow.Manager
	store   db.BridgeStore
}

// NewPairingHandler creates a new pairing handler
func NewPairingHandler(manager *flow.Manager, store db.BridgeStore) *PairingHandler {
	return &PairingHandler{manager: manager, store: store}
}

// StartFlow handles POST /pairing/flows
// @Summary      Start a pairing flow
// @Description  Starts a user-initiated or reauth pairing flow and returns the first step
// @Tags         pairing
// @Accept       json
// @Produce      json
// @Param        request  body      types.StartFlowRequest  true  "Flow trigger (user or reauth)"
// @Success      200      {object}  types.FlowResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid trigger"
// @Failure      404      {object}  types.ErrorResponse  "Unknown bridge for reauth"
// @Router       /pairing/flows [post]
func (h *PairingHandler) StartFlow(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.StartFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	var seed flow.Seed
	switch req.Trigger {
	case string(flow.TriggerUser):
		seed = flow.Seed{Trigger: flow.TriggerUser}

	case string(flow.TriggerReauth):
		if req.BridgeID == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_request",
				Message: "reauth requires bridge_id",
			})
			return
		}
		b, err := h.store.Get(ctx, req.BridgeID)
		if errors.Is(err, db.ErrBridgeNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "bridge_not_found",
				Message: "no registered bridge with that id",
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Error: "store_error", Message: err.Error(),
			})
			return
		}
		seed = flow.Seed{Trigger: flow.TriggerReauth, Host: b.Host, Port: b.Port, RawID: b.ID}

	default:
		// Announcement-class flows enter via the listener or the
		// addon endpoint, never through this one.
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_trigger",
			Message: "trigger must be user or reauth",
		})
		return
	}

	id, res, err := h.manager.Start(ctx, seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "flow_error", Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, flowResponse(id, res))
}

// Step handles POST /pairing/flows/:id/steps
// @Summary      Advance a pairing flow
// @Description  Submits input for the flow's pending step and returns the next prompt or a terminal outcome
// @Tags         pairing
// @Accept       json
// @Produce      json
// @Param        id       path      string             true   "Flow handle"
// @Param        request  body      types.StepRequest  false  "Step input"
// @Success      200      {object}  types.FlowResponse
// @Failure      404      {object}  types.ErrorResponse  "Unknown flow"
// @Router       /pairing/flows/{id}/steps [post]
func (h *PairingHandler) Step(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.StepRequest
	// The link and confirm steps take an empty body.
	_ = c.ShouldBindJSON(&req)

	res, err := h.manager.Advance(ctx, c.Param("id"), flow.Input{Host: req.Host, Port: req.Port})
	if errors.Is(err, flow.ErrFlowNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "flow_not_found",
			Message: "no pairing flow with that handle",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "flow_error", Message: err.Error(),
		})
		return
	}

	id := c.Param("id")
	if res.Terminal() {
		id = ""
	}
	c.JSON(http.StatusOK, flowResponse(id, res))
}

// Cancel handles DELETE /pairing/flows/:id
// @Summary      Abandon a pairing flow
// @Description  Drops an in-progress flow; nothing is persisted before registration
// @Tags         pairing
// @Produce      json
// @Param        id  path  string  true  "Flow handle"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse  "Unknown flow"
// @Router       /pairing/flows/{id} [delete]
func (h *PairingHandler) Cancel(c *gin.Context) {
	if err := h.manager.Cancel(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "flow_not_found",
			Message: "no pairing flow with that handle",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// Addon handles POST /pairing/addon
// @Summary      Announce an addon-managed gateway
// @Description  Starts an addon pairing flow from a host-platform push; the returned confirm step completes it
// @Tags         pairing
// @Accept       json
// @Produce      json
// @Param        request  body      types.AddonRequest  true  "Addon discovery payload"
// @Success      200      {object}  types.FlowResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid payload"
// @Router       /pairing/addon [post]
func (h *PairingHandler) Addon(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.AddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	id, res, err := h.manager.Start(ctx, flow.Seed{
		Trigger:    flow.TriggerAddon,
		RawID:      req.ID,
		Host:       req.Host,
		Port:       req.Port,
		APIKey:     req.APIKey,
		AddonLabel: req.Addon,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "flow_error", Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, flowResponse(id, res))
}

func flowResponse(id string, res flow.Result) types.FlowResponse {
	return types.FlowResponse{
		FlowID:       id,
		Kind:         string(res.Kind),
		Step:         res.Step,
		Reason:       res.Reason,
		Choices:      res.Choices,
		Placeholders: res.Placeholders,
		BridgeID:     res.BridgeID,
	}
}
