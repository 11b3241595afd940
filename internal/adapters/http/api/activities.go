// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// roster is the shape shared by Signup and Unregister.
type roster func(ctx context.Context, activity, email string) (string, error)

// ActivitiesHandler serves the activity catalog and roster changes.
type ActivitiesHandler struct {
	deps Dependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	all, err := h.deps.ListActivities(r.Context())
	if err != nil {
		writeInternal(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// HandleSignup handles POST /activities/{activity}/signup?email= requests.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, "api.signup", h.deps.Signup)
}

// HandleUnregister handles DELETE /activities/{activity}/unregister?email= requests.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, "api.unregister", h.deps.Unregister)
}

func (h *ActivitiesHandler) change(w http.ResponseWriter, r *http.Request, op string, fn roster) {
	// PathValue is already percent-decoded; the name is used verbatim.
	activity := r.PathValue("activity")

	// Presence is required, an empty value is not rejected.
	values, ok := r.URL.Query()["email"]
	if !ok || len(values) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: []validationIssue{{
			Type:  "missing",
			Loc:   []string{"query", "email"},
			Msg:   "Field required",
			Input: nil,
		}}})
		return
	}
	email := values[0]

	msg, err := fn(r.Context(), activity, email)
	if err != nil {
		if status, detail, known := statusFor(err); known {
			writeDetail(w, status, detail)
			return
		}
		writeInternal(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}
