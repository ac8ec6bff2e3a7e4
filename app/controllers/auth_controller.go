package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"rps-backend/app/dto"
	jwtutil "rps-backend/app/jwt"
	"rps-backend/app/middleware"
	"rps-backend/app/services"
	"rps-backend/config"
	"rps-backend/global"
)

// Mailer is the narrow outbound-mail dependency: a send failure never fails
// the request that triggered it.
type Mailer interface {
	SendVerification(recipient, verificationURL string) error
}

const mailWarning = "account created but the verification email could not be sent"

type AuthController struct {
	Users         *services.UserService
	Verifications *services.VerificationService
	Signer        *jwtutil.Signer
	Mailer        Mailer
	Verify        config.Verify
}

func NewAuthController(users *services.UserService, verifications *services.VerificationService, signer *jwtutil.Signer, mailer Mailer, verify config.Verify) *AuthController {
	return &AuthController{Users: users, Verifications: verifications, Signer: signer, Mailer: mailer, Verify: verify}
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := c.Users.SignUp(req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			errorJSON(w, http.StatusConflict, "username already exists")
			return
		}
		global.Logger.Error().Err(err).Msg("signup failed")
		errorJSON(w, http.StatusInternalServerError, "signup failed")
		return
	}

	// The account is committed; the link and the mail are best-effort from
	// here. A failure is reported in the response because there is no other
	// way to get the link redelivered.
	warning := ""
	if link, err := c.Verifications.IssueLink(u.ID); err != nil {
		global.Logger.Error().Err(err).Str("username", u.Username).Msg("issue verification link failed")
		warning = mailWarning
	} else if err := c.Mailer.SendVerification(u.Email, link); err != nil {
		global.Logger.Error().Err(err).Str("username", u.Username).Msg("send verification email failed")
		warning = mailWarning
	}

	token, exp, err := c.Signer.Sign(u.Username, u.Role)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusCreated, dto.TokenResponse{Token: token, ExpiresAt: exp.Unix(), Role: u.Role, Warning: warning})
}

func (c *AuthController) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := c.Users.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			errorJSON(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		global.Logger.Error().Err(err).Msg("signin failed")
		errorJSON(w, http.StatusInternalServerError, "signin failed")
		return
	}
	if !u.EmailVerified {
		errorJSON(w, http.StatusForbidden, "email not verified")
		return
	}

	token, exp, err := c.Signer.Sign(u.Username, u.Role)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token, ExpiresAt: exp.Unix(), Role: u.Role})
}

// VerifyEmail consumes a link from the verification mail and redirects the
// browser to a fixed outcome page.
func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	tokenID := r.URL.Query().Get("token_id")
	secret := r.URL.Query().Get("token")
	if tokenID == "" || secret == "" {
		http.Redirect(w, r, c.Verify.InvalidURL, http.StatusFound)
		return
	}
	outcome, err := c.Verifications.Redeem(tokenID, secret)
	if err != nil {
		global.Logger.Error().Err(err).Msg("redeem verification token failed")
	}
	switch outcome {
	case services.RedeemOK:
		http.Redirect(w, r, c.Verify.SuccessURL, http.StatusFound)
	case services.RedeemExpired:
		http.Redirect(w, r, c.Verify.ExpiredURL, http.StatusFound)
	default:
		http.Redirect(w, r, c.Verify.InvalidURL, http.StatusFound)
	}
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	if p == nil {
		errorJSON(w, http.StatusUnauthorized, "missing credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": p.Username, "role": string(p.Role)})
}
