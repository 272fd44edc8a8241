package accounts

import (
	"errors"
	"net/http"
	"strings"
	"time"

	usersdomain "livestock-invest-go/internal/domain/users"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
)

type registerRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	NationalID string `json:"national_id"`
	BankIBAN   string `json:"bank_iban"`
	IDFrontRef string `json:"id_front_ref"`
	IDBackRef  string `json:"id_back_ref"`
}

type loginRequest struct {
	Phone string `json:"phone"`
}

type loginResponse struct {
	Token     string                     `json:"token"`
	ExpiresAt time.Time                  `json:"expires_at"`
	User      commonhandler.UserResponse `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.Register(r.Context(), usersdomain.RegisterInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Role:       usersdomain.Role(strings.ToUpper(strings.TrimSpace(req.Role))),
		NationalID: req.NationalID,
		BankIBAN:   req.BankIBAN,
		IDFrontRef: req.IDFrontRef,
		IDBackRef:  req.IDBackRef,
	})
	if err != nil {
		h.writeUserError(w, "auth.register", err, "role", req.Role)
		return
	}

	writeJSON(w, http.StatusCreated, commonhandler.ToUserResponse(*user))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Phone)
	if err != nil {
		if accessErr, ok := usersdomain.IsAccessError(err); ok {
			h.recorder.ObserveLogin("refused")
			h.log.BusinessError("auth.login: account not active", err, "user_role", accessErr.Role, "user_status", accessErr.Status)
			code := "account_pending"
			if errors.Is(err, usersdomain.ErrAccountRejected) {
				code = "account_rejected"
			}
			writeError(w, http.StatusForbidden, code, accessErr.Message())
			return
		}
		h.recorder.ObserveLogin("failed")
		h.writeUserError(w, "auth.login", err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(*user)
	if err != nil {
		h.log.InternalError("auth.login: issue token failed", err, "user_id", user.ID)
		commonhandler.WriteInternalError(w)
		return
	}

	h.recorder.ObserveLogin("success")
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      commonhandler.ToUserResponse(*user),
	})
}
