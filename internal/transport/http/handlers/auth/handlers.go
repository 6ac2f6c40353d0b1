package authhandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/logger"
	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/transport/http/middleware"
	"emsconsole/internal/transport/http/shared"
	"emsconsole/internal/validation"
)

const (
	MsgLoginFailed    = "Login failed."
	MsgLoggedIn       = "Login successfully!"
	MsgOTPSendFailed  = "Error sending OTP."
	MsgOTPSent        = "OTP sent to your email!"
	MsgOTPInvalid     = "Invalid OTP."
	MsgOTPVerified    = "OTP verified successfully!"
	MsgPasswordFailed = "Error while changing password."
	MsgPasswordDone   = "Password changed successfully!"
)

type Handler struct {
	Sessions *session.Manager
	Cookies  *session.CookieCodec
	Client   *gateway.Client
}

func NewHandler(sessions *session.Manager, cookies *session.CookieCodec, client *gateway.Client) *Handler {
	return &Handler{Sessions: sessions, Cookies: cookies, Client: client}
}

// RegisterPublicRoutes mounts the routes reachable without a session.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/forgot-password", h.handleForgotPassword)
		r.Post("/verify-otp", h.handleVerifyOTP)
		r.Post("/change-password", h.handleChangePassword)
	})
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/logout", h.handleLogout)
	r.Get("/auth/session", h.handleSession)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	session.View
	IsFirstLogin bool   `json:"isFirstLogin"`
	Message      string `json:"message"`
	Redirect     string `json:"redirect"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	if shared.Reject(w, requestID, "login", validation.Values{"email": payload.Email, "password": payload.Password}, validation.Env{}) {
		return
	}

	sess, err := h.Sessions.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		shared.WriteError(w, r, forms.NewFault(err, MsgLoginFailed), MsgLoginFailed)
		return
	}
	if err := h.Cookies.Write(w, sess); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("session cookie signing failed")
		_ = h.Sessions.Logout(r.Context(), sess.ID)
		api.Fail(w, http.StatusInternalServerError, "session_error", MsgLoginFailed, requestID)
		return
	}
	api.Success(w, loginResponse{
		View:         sess.View(),
		IsFirstLogin: sess.User.IsFirstLogin,
		Message:      MsgLoggedIn,
		Redirect:     "/dashboard",
	}, requestID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	if err := h.Sessions.Logout(r.Context(), sess.ID); err != nil {
		shared.WriteError(w, r, err, "logout failed")
		return
	}
	h.Cookies.Clear(w)
	api.Success(w, map[string]string{"redirect": "/login"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	api.Success(w, sess.View(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	payload.Email = strings.TrimSpace(payload.Email)
	if shared.Reject(w, requestID, "forgot_password", validation.Values{"email": payload.Email}, validation.Env{}) {
		return
	}
	ack, err := h.Client.ForgotPassword(r.Context(), payload.Email)
	if err != nil {
		shared.WriteError(w, r, forms.NewFault(err, MsgOTPSendFailed), MsgOTPSendFailed)
		return
	}
	api.Success(w, message(ack, MsgOTPSent), requestID)
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	payload.Email = strings.TrimSpace(payload.Email)
	payload.OTP = strings.TrimSpace(payload.OTP)
	if shared.Reject(w, requestID, "verify_otp", validation.Values{"email": payload.Email, "otp": payload.OTP}, validation.Env{}) {
		return
	}
	ack, err := h.Client.VerifyOTP(r.Context(), payload.Email, payload.OTP)
	if err != nil {
		shared.WriteError(w, r, forms.NewFault(err, MsgOTPInvalid), MsgOTPInvalid)
		return
	}
	out := message(ack, MsgOTPVerified)
	out["redirect"] = "/change-password?email=" + payload.Email
	api.Success(w, out, requestID)
}

// handleChangePassword serves both the first-login change, which rides on
// the session's token, and the forgot-password reset, which names the
// account by email instead. A successful change ends the session.
func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload gateway.ChangePasswordRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	payload.Email = strings.TrimSpace(payload.Email)
	values := validation.Values{"newPassword": payload.NewPassword, "confirmPassword": payload.ConfirmPassword}
	if shared.Reject(w, requestID, "change_password", values, validation.Env{}) {
		return
	}

	sess, hasSession := h.optionalSession(r)
	if !hasSession && payload.Email == "" {
		shared.WriteError(w, r, gateway.ErrNoToken, MsgPasswordFailed)
		return
	}
	ack, err := h.Client.WithToken(sess.Token).ChangePassword(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, forms.NewFault(err, MsgPasswordFailed), MsgPasswordFailed)
		return
	}
	if hasSession {
		if err := h.Sessions.Logout(r.Context(), sess.ID); err != nil {
			logger.FromContext(r.Context()).Warn().Err(err).Msg("session drop after password change failed")
		}
	}
	h.Cookies.Clear(w)
	out := message(ack, MsgPasswordDone)
	out["redirect"] = "/login"
	api.Success(w, out, requestID)
}

func (h *Handler) optionalSession(r *http.Request) (session.Session, bool) {
	id, err := h.Cookies.Read(r)
	if err != nil {
		return session.Session{}, false
	}
	sess, err := h.Sessions.Resolve(r.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logger.FromContext(r.Context()).Warn().Err(err).Msg("session lookup failed")
		}
		return session.Session{}, false
	}
	return sess, true
}

func message(ack gateway.Ack, fallback string) map[string]string {
	msg := ack.Message
	if msg == "" {
		msg = fallback
	}
	return map[string]string{"message": msg}
}
