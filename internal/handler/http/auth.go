package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/oauth"
)

const (
	stateCookieName   = "state"
	stateCookieTTL    = 5 * time.Minute
	googleCallbackURI = "/api/v1/auth/oauth/callback/google"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
}

// NewAuthHandler builds the auth endpoints. googleService may be nil, which disables Google login.
func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
	}
}

func sessionTracking(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// issueSession sets the refresh cookie and answers 201 with both tokens.
func (a *AuthHandlerImpl) issueSession(w http.ResponseWriter, message string, tokens auth.TokenResponse) {
	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.Created(w, message, tokens)
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeAndValidate(w, r, "Register", &req) {
		return
	}

	tokens, err := a.authService.Register(r.Context(), req, sessionTracking(r))
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User registered", "employee_id", req.EmployeeID)
	a.issueSession(w, "User created successfully", tokens)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeAndValidate(w, r, "Login", &req) {
		return
	}

	tokens, err := a.authService.Login(r.Context(), req, sessionTracking(r))
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	a.issueSession(w, "User logged in successfully", tokens)
}

// RefreshToken implements AuthHandler. The cookie is preferred, the JSON body is a fallback.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		req.RefreshToken = cookie.Value
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RefreshToken decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokens, err := a.authService.RefreshToken(r.Context(), req)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Token refreshed successfully", tokens)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrRefreshTokenCookieNotFound)
		return
	}
	if cookie.Value == "" {
		response.HandleError(w, auth.ErrRefreshTokenCookieEmpty)
		return
	}

	if err := a.authService.Logout(r.Context(), cookie.Value); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.ClearRefreshTokenCookie())
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// ForgotPassword implements AuthHandler. The answer is the same whether or not the email is registered.
func (a *AuthHandlerImpl) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ForgotPasswordRequest
	if !decodeAndValidate(w, r, "ForgotPassword", &req) {
		return
	}

	if err := a.authService.ForgotPassword(r.Context(), req); err != nil {
		slog.Error("ForgotPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "If the email is registered, a password reset link has been sent", nil)
}

// ResetPassword implements AuthHandler.
func (a *AuthHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetPasswordRequest
	if !decodeAndValidate(w, r, "ResetPassword", &req) {
		return
	}

	if err := a.authService.ResetPassword(r.Context(), req); err != nil {
		slog.Error("ResetPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Your password have been updated.", nil)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrGoogleLoginDisabled)
		return
	}

	state := a.googleService.GenerateState(r.UserAgent())
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     googleCallbackURI,
		Expires:  time.Now().Add(stateCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler. Every outcome redirects to the frontend.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	redirect := func(query url.Values) {
		http.Redirect(w, r, a.frontendURL+"/auth/callback/google?"+query.Encode(), http.StatusTemporaryRedirect)
	}
	redirectWithError := func(code string) {
		redirect(url.Values{"error": {code}})
	}

	if a.googleService == nil {
		redirectWithError("google_login_disabled")
		return
	}

	code, errCode := checkCallback(r)
	if errCode != "" {
		slog.Error("Google callback rejected", "error", errCode)
		redirectWithError(errCode)
		return
	}

	token, err := a.googleService.VerifyToken(r.Context(), code)
	if err != nil {
		slog.Error("Google token exchange error", "error", err)
		redirectWithError("token_verification_failed")
		return
	}
	info, err := a.googleService.VerifyUser(r.Context(), token)
	if err != nil {
		slog.Error("Google userinfo error", "error", err)
		redirectWithError("user_verification_failed")
		return
	}

	tokens, err := a.authService.LoginWithGoogle(r.Context(), info.Email, info.GoogleID, sessionTracking(r))
	if errors.Is(err, auth.ErrGoogleAccountNotRegistered) {
		redirectWithError("account_not_registered")
		return
	}
	if err != nil {
		slog.Error("LoginWithGoogle service error", "error", err)
		redirectWithError("login_failed")
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	redirect(url.Values{
		"access_token": {tokens.AccessToken},
		"expires_in":   {strconv.FormatInt(tokens.AccessTokenExpiresIn, 10)},
	})
}

// checkCallback matches the state cookie against the state parameter and
// returns the authorization code, or the error code reported to the frontend.
func checkCallback(r *http.Request) (code string, errCode string) {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return "", "state_cookie_not_found"
	}

	query := r.URL.Query()
	if e := query.Get("error"); e != "" {
		// "access_denied" when the user cancels the consent screen
		return "", e
	}

	switch state := query.Get("state"); {
	case cookie.Value == "":
		return "", "state_cookie_empty"
	case state == "":
		return "", "state_param_empty"
	case state != cookie.Value:
		return "", "state_mismatch"
	}

	if code = query.Get("code"); code == "" {
		return "", "code_empty"
	}
	return code, ""
}
