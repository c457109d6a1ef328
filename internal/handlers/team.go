package handlers

import (
	"errors"
	"net/http"

	"github.com/enigmahq/taskboard/internal/dto"
	apierrors "github.com/enigmahq/taskboard/internal/errors"
	"github.com/enigmahq/taskboard/internal/middleware"
	"github.com/enigmahq/taskboard/internal/services"
	"github.com/gin-gonic/gin"
)

// TeamHandler coordinates team formation HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a team with the current user as leader.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTeamRequest struct {
		Name       string  `json:"name" binding:"required"`
		ClubName   *string `json:"club_name"`
		MaxMembers int     `json:"max_members"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(actor, services.CreateTeamInput{
		Name:       req.Name,
		ClubName:   req.ClubName,
		MaxMembers: req.MaxMembers,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"team":    dto.ToTeamDTO(*team, true),
		"message": "Team created successfully! Share your team code with teammates.",
	})
}

// JoinTeam admits the current user into a team by join code.
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinTeamRequest struct {
		JoinCode string `json:"join_code" binding:"required,len=6"`
	}

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Team code must be exactly 6 characters")
		return
	}

	team, err := h.teamService.JoinTeam(actor, req.JoinCode)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":    dto.ToTeamDTO(*team, false),
		"message": "Successfully joined team \"" + team.Name + "\"!",
	})
}

// GetMyTeam returns the current user's team with its roster. The join code
// is revealed only to the leader.
func (h *TeamHandler) GetMyTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	team, err := h.teamService.GetTeamForUser(actor)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team": dto.ToTeamDTO(*team, actor.IsTeamLeader),
	})
}

// LeaveTeam removes the current user from their team. A leaving leader
// disbands the team.
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	disbanded, err := h.teamService.LeaveTeam(actor)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	message := "You have left the team"
	if disbanded {
		message = "Team disbanded"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ListTeams returns all teams. Admin only; role is enforced by middleware.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": dto.ToTeamListDTO(teams)})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTeamName),
		errors.Is(err, services.ErrInvalidMaxMembers),
		errors.Is(err, services.ErrOwnTeam),
		errors.Is(err, services.ErrNotInTeam):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyInTeam),
		errors.Is(err, services.ErrAlreadyCreatedTeam):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidJoinCode),
		errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTeamFull),
		errors.Is(err, services.ErrTeamInactive),
		errors.Is(err, services.ErrJoinCodeExhausted):
		apierrors.PreconditionFailed(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
