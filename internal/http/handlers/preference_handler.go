package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/services"
)

// PreferenceRequest replaces all three code sets. Each field is a
// comma-joined list; an empty list matches no dog.
type PreferenceRequest struct {
	Gender string `json:"gender" binding:"codeset=gender" example:"m,f"`
	Age    string `json:"age"    binding:"codeset=age"    example:"b,y"`
	Size   string `json:"size"   binding:"codeset=size"   example:"s,m,l"`
}

// PreferenceResponse is the wire form of a preference.
type PreferenceResponse struct {
	ID     int64  `json:"id" example:"3"`
	Gender string `json:"gender" example:"m,f"`
	Age    string `json:"age" example:"b,y"`
	Size   string `json:"size" example:"s,m,l"`
}

func preferenceResponse(p *domain.Preference) PreferenceResponse {
	return PreferenceResponse{ID: p.ID, Gender: p.Gender, Age: p.Age, Size: p.Size}
}

// GetPreferences godoc
// @ID          getPreferences
// @Summary     Get preferences
// @Description Returns the caller's discovery preference, creating an empty one on first access.
// @Tags        Preferences
// @Produce     json
// @Security    TokenAuth
// @Success     200  {object}  handlers.PreferenceResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user/preferences/ [get]
func (h *Handlers) GetPreferences(c *gin.Context) {
	uid, authed := currentUser(c)
	if !authed {
		return
	}
	p, err := h.prefs.Get(c.Request.Context(), uid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, preferenceResponse(p))
}

// UpdatePreferences godoc
// @ID          updatePreferences
// @Summary     Replace preferences
// @Description Replaces gender, age and size sets. Codes: gender m,f,u; age b,y,a,s; size s,m,l,xl,u.
// @Tags        Preferences
// @Accept      json
// @Produce     json
// @Security    TokenAuth
// @Param       body  body      handlers.PreferenceRequest  true  "New preference"
// @Success     200   {object}  handlers.PreferenceResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Unknown code"
// @Failure     401   {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user/preferences/ [put]
func (h *Handlers) UpdatePreferences(c *gin.Context) {
	uid, authed := currentUser(c)
	if !authed {
		return
	}
	var req PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, bindingMessage(err))
		return
	}
	p, err := h.prefs.Update(c.Request.Context(), uid, services.PreferenceUpdate{
		Gender: req.Gender,
		Size:   req.Size,
		Age:    req.Age,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, preferenceResponse(p))
}
