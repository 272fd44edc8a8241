package accounts

import (
	"net/http"
	"strings"

	usersdomain "livestock-invest-go/internal/domain/users"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
)

type createUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type userListResponse struct {
	Items []commonhandler.UserResponse `json:"items"`
	Total int                          `json:"total"`
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter usersdomain.ListFilter
	if value := strings.TrimSpace(query.Get("role")); value != "" {
		role, ok := usersdomain.ParseRole(strings.ToUpper(value))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid role")
			return
		}
		filter.Role = role
	}
	if value := strings.TrimSpace(query.Get("status")); value != "" {
		status, ok := usersdomain.ParseStatus(strings.ToUpper(value))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
			return
		}
		filter.Status = status
	}

	items, err := h.Users.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("admin.users.list: list failed", err)
		commonhandler.WriteInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, userListResponse{
		Items: commonhandler.ToUserListResponse(items),
		Total: len(items),
	})
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.CreateByAdmin(r.Context(), usersdomain.CreateInput{
		Name:  req.Name,
		Phone: req.Phone,
		Role:  usersdomain.Role(strings.ToUpper(strings.TrimSpace(req.Role))),
	})
	if err != nil {
		h.writeUserError(w, "admin.users.create", err, "role", req.Role)
		return
	}

	writeJSON(w, http.StatusCreated, commonhandler.ToUserResponse(*user))
}

func (h *Handlers) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "admin.users.approve")
	if !ok {
		return
	}
	user, err := h.Users.Approve(r.Context(), userID)
	if err != nil {
		h.writeUserError(w, "admin.users.approve", err, "target_user_id", userID)
		return
	}
	writeJSON(w, http.StatusOK, commonhandler.ToUserResponse(*user))
}

func (h *Handlers) RejectUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "admin.users.reject")
	if !ok {
		return
	}
	user, err := h.Users.Reject(r.Context(), userID)
	if err != nil {
		h.writeUserError(w, "admin.users.reject", err, "target_user_id", userID)
		return
	}
	writeJSON(w, http.StatusOK, commonhandler.ToUserResponse(*user))
}
