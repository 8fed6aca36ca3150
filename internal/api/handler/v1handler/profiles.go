package v1handler

import (
	"net/http"

	"jobboard/internal/profiles"
	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"

	"github.com/gin-gonic/gin"
)

// ProfileRequest is the body of PUT /me/profile. Child collections replace
// the stored ones wholesale.
type ProfileRequest struct {
	Headline     string              `json:"headline"`
	Summary      string              `json:"summary"`
	Location     string              `json:"location"`
	ShowHeadline bool                `json:"showHeadline"`
	ShowLocation bool                `json:"showLocation"`
	ShowSummary  bool                `json:"showSummary"`
	ShowSkills   bool                `json:"showSkills"`
	Skills       []string            `json:"skills"`
	Educations   []domain.Education  `json:"educations"`
	Experiences  []domain.Experience `json:"experiences"`
	Links        []domain.Link       `json:"links"`
}

// MyProfile returns the caller's own profile.
func (h *Handler) MyProfile(c *gin.Context) {
	profile, err := h.deps.Profiles.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile overwrites the caller's profile.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	profile, err := h.deps.Profiles.Update(c.Request.Context(), currentUser(c), profiles.UpdateParams{
		Headline:     req.Headline,
		Summary:      req.Summary,
		Location:     req.Location,
		ShowHeadline: req.ShowHeadline,
		ShowLocation: req.ShowLocation,
		ShowSummary:  req.ShowSummary,
		ShowSkills:   req.ShowSkills,
		Skills:       req.Skills,
		Educations:   req.Educations,
		Experiences:  req.Experiences,
		Links:        req.Links,
	})
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, profile)
}

// PublicProfile returns another user's profile with hidden sections stripped.
func (h *Handler) PublicProfile(c *gin.Context) {
	profile, err := h.deps.Profiles.PublicByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, profile)
}
