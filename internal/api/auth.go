package api

import (
	"errors"
	"net/http"
	"strconv"

	"dpstore-backend/internal/auth"
	"dpstore-backend/internal/service"
	"dpstore-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateCookieName = "oauth_state"

type registerRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrEmailUsed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email sudah terdaftar."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registrasi berhasil!",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoogleAccount):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Akun ini terdaftar via Google. Silakan masuk dengan Google."})
		case errors.Is(err, service.ErrBadCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email atau password salah."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		}
		return
	}

	identity := auth.Identity{ID: user.ID, Email: user.Email, FullName: user.FullName}
	token, err := h.tokens.Issue(identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login berhasil!",
		"token":   token,
		"user":    identity,
	})
}

// --- Google sign-in ---

func (h *Handler) googleLogin(c *gin.Context) {
	state := uuid.New().String()
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthURL(state))
}

// googleCallback finishes the OAuth flow: it verifies the anti-forgery state,
// resolves or creates the account, opens a Redis session, and redirects back
// to the storefront. The frontend then trades the session for a bearer token
// via /api/auth/session-token.
func (h *Handler) googleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != c.Query("state") {
		c.Redirect(http.StatusTemporaryRedirect, h.cfg.Server.FrontendURL+"/login.html?error=oauth")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	profile, err := h.google.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, h.cfg.Server.FrontendURL+"/login.html?error=oauth")
		return
	}

	user, err := h.accounts.FindOrCreateGoogleUser(c.Request.Context(), profile)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, h.cfg.Server.FrontendURL+"/login.html?error=oauth")
		return
	}

	sid, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, h.cfg.Server.FrontendURL+"/login.html?error=oauth")
		return
	}

	c.SetCookie(sessionCookieName, sid, 0, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.cfg.Server.FrontendURL+"/index.html?login=success")
}

// sessionToken trades the Google-login session cookie for a bearer token.
func (h *Handler) sessionToken(c *gin.Context) {
	sid, err := c.Cookie(sessionCookieName)
	if err != nil || sid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tidak ada sesi aktif."})
		return
	}
	userID, err := h.sessions.Get(c.Request.Context(), sid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tidak ada sesi aktif."})
		return
	}
	user, err := h.accounts.Profile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tidak ada sesi aktif."})
		return
	}

	identity := auth.Identity{ID: user.ID, Email: user.Email, FullName: user.FullName}
	token, err := h.tokens.Issue(identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": identity})
}

func (h *Handler) logout(c *gin.Context) {
	if sid, err := c.Cookie(sessionCookieName); err == nil && sid != "" {
		_ = h.sessions.Destroy(c.Request.Context(), sid)
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout berhasil."})
}

// --- Profile ---

func (h *Handler) getProfile(c *gin.Context) {
	id := currentIdentity(c)
	user, err := h.accounts.Profile(c.Request.Context(), id.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	FullName string `json:"fullName" binding:"required,min=3"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	id := currentIdentity(c)
	user, err := h.accounts.UpdateProfile(c.Request.Context(), id.ID, req.FullName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profil berhasil diperbarui!",
		"user":    user,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	id := currentIdentity(c)
	err := h.accounts.ChangePassword(c.Request.Context(), id.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoogleAccount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ubah password tidak berlaku untuk akun Google."})
		case errors.Is(err, service.ErrBadCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Password lama Anda salah."})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password berhasil diubah."})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// forgotPassword always answers 200 so the endpoint cannot be used to probe
// which emails are registered.
func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.accounts.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Jika email Anda terdaftar, Anda akan menerima tautan reset kata sandi."})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) resetPassword(c *gin.Context) {
	token := c.Param("token")
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(token) != 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token tidak valid atau password terlalu pendek."})
		return
	}

	err := h.accounts.ResetPassword(c.Request.Context(), token, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Token reset kata sandi tidak valid atau telah kedaluwarsa."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Kata sandi Anda telah berhasil direset."})
}

// --- Favorites ---

func (h *Handler) listFavorites(c *gin.Context) {
	id := currentIdentity(c)
	games, err := h.accounts.ListFavorites(c.Request.Context(), id.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, games)
}

type addFavoriteRequest struct {
	GameID int64 `json:"gameId" binding:"required"`
}

func (h *Handler) addFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if !bindJSON(c, &req) {
		return
	}

	id := currentIdentity(c)
	if err := h.accounts.AddFavorite(c.Request.Context(), id.ID, req.GameID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Game ditambahkan ke favorit."})
}

func (h *Handler) removeFavorite(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("gameId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "gameId", Message: "gameId harus angka"}}})
		return
	}

	id := currentIdentity(c)
	if err := h.accounts.RemoveFavorite(c.Request.Context(), id.ID, gameID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game tidak ditemukan di favorit."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game dihapus dari favorit."})
}

// --- Order history ---

func (h *Handler) myTransactions(c *gin.Context) {
	id := currentIdentity(c)
	txs, err := h.orders.HistoryForUser(c.Request.Context(), id.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, txs)
}
