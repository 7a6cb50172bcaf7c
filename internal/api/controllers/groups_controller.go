package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/models/response_models"
	"nudgeup/internal/services"
	"nudgeup/pkg/utils"
)

type GroupsController struct {
	groupService  services.GroupServiceInterface
	rosterService services.RosterServiceInterface
	propagation   services.PropagationServiceInterface
}

func NewGroupsController(
	groupService services.GroupServiceInterface,
	rosterService services.RosterServiceInterface,
	propagation services.PropagationServiceInterface,
) *GroupsController {
	return &GroupsController{
		groupService:  groupService,
		rosterService: rosterService,
		propagation:   propagation,
	}
}

func (gc *GroupsController) CreateGroupHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	group, err := gc.groupService.CreateGroup(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toGroupResponse(group), "Group created")
}

func (gc *GroupsController) ListGroupsHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	groups, err := gc.groupService.ListGroups(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]response_models.GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toGroupResponse(&groups[i]))
	}
	utils.RespondSuccess(c, out, "Fetched groups")
}

func (gc *GroupsController) JoinGroupHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Code       string `json:"code"`
		MemberName string `json:"memberName"`
		Avatar     string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	group, err := gc.groupService.JoinGroup(c.Request.Context(), userID, req.Code, req.MemberName, req.Avatar)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toGroupResponse(group), "Joined group")
}

func (gc *GroupsController) MembersHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	roster, err := gc.rosterService.MergedRoster(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, roster, "Fetched members")
}

// ReconcileHandler is the client's visibility-change hook: it pulls
// any shared habits the caller is missing.
func (gc *GroupsController) ReconcileHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := gc.propagation.ReconcileForUser(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Reconciled")
}

func toGroupResponse(g *db_models.Group) response_models.GroupResponse {
	return response_models.GroupResponse{
		ID:         g.ID,
		Name:       g.Name,
		Icon:       g.Icon,
		TotalDays:  g.TotalDays,
		InviteCode: g.InviteCode,
		CreatedAt:  g.CreatedAt,
	}
}
