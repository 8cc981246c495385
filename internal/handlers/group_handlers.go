package handlers

import (
	"net/http"

	"chat-backend/internal/models"
	"chat-backend/internal/presence"
	"chat-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GroupHandlers struct {
	groups   *services.GroupService
	presence presence.Tracker
}

func NewGroupHandlers(groups *services.GroupService, tracker presence.Tracker) *GroupHandlers {
	return &GroupHandlers{groups: groups, presence: tracker}
}

func (h *GroupHandlers) CreateGroup(c *gin.Context) {
	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), principal(c), &req)
	if err != nil {
		writeError(c, err, "Failed to create group")
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandlers) ListGroups(c *gin.Context) {
	groups, err := h.groups.ListGroups(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err, "Failed to list groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *GroupHandlers) GetGroupMembers(c *gin.Context) {
	members, err := h.groups.GetGroupMembers(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *GroupHandlers) GetPresence(c *gin.Context) {
	st, err := h.presence.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to look up presence")
		return
	}
	c.JSON(http.StatusOK, st)
}
