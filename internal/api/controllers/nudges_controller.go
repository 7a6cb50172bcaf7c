package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/services"
	"nudgeup/pkg/utils"
)

type NudgesController struct {
	nudgeService services.NudgeServiceInterface
}

func NewNudgesController(nudgeService services.NudgeServiceInterface) *NudgesController {
	return &NudgesController{nudgeService: nudgeService}
}

func (nc *NudgesController) SendNudgeHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ToUserID string `json:"toUserId"`
		HabitID  string `json:"habitId"`
		GroupID  string `json:"groupId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ToUserID == "" || req.GroupID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := nc.nudgeService.SendNudge(c.Request.Context(), userID, req.ToUserID, req.HabitID, req.GroupID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Nudge dispatched")
}

func (nc *NudgesController) NudgeGroupHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Kind string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := nc.nudgeService.NudgeGroup(c.Request.Context(), userID, c.Param("id"), db_models.NudgeKind(req.Kind))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, results, "Group nudge dispatched")
}

func (nc *NudgesController) ResolveNudgeHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := nc.nudgeService.ResolveNudge(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Nudge resolved")
}

func (nc *NudgesController) ListNudgesHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	nudges, err := nc.nudgeService.ListUnresolvedFor(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nudges, "Fetched nudges")
}
