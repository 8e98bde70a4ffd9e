package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dpstore-backend/internal/auth"
	"dpstore-backend/internal/models"
	"dpstore-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.admin.Login(req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username atau password salah"})
		return
	}

	token, err := h.tokens.Issue(auth.Identity{IsAdmin: true, Username: req.Username})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login berhasil!", "token": token})
}

func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.admin.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// --- Transactions ---

func (h *Handler) adminListTransactions(c *gin.Context) {
	rows, err := h.admin.ListTransactions(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, decorateAdminTransactions(rows))
}

func (h *Handler) adminRecentTransactions(c *gin.Context) {
	since := c.Query("since")
	if since == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Parameter "since" dibutuhkan.`})
		return
	}
	sinceTime, err := time.Parse(time.RFC3339, since)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Format tanggal "since" tidak valid.`})
		return
	}

	txs, err := h.admin.ListTransactionsSince(c.Request.Context(), sinceTime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, txs)
}

type updateStatusRequest struct {
	NewStatus string `json:"newStatus" binding:"required,oneof=SUCCESS FAILED PENDING EXPIRED REFUNDED"`
}

// adminUpdateTransactionStatus is the accrual trigger: the first transition
// into SUCCESS credits the buyer's rewards balance.
func (h *Handler) adminUpdateTransactionStatus(c *gin.Context) {
	transactionID := c.Param("transactionId")
	if _, err := uuid.Parse(transactionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{
			Field:   "transactionId",
			Message: "transactionId harus berupa UUID",
		}}})
		return
	}

	var req updateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.orders.UpdateStatus(c.Request.Context(), transactionID, req.NewStatus)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaksi tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Status transaksi berhasil diubah menjadi %s", req.NewStatus),
		"transaction": t,
	})
}

// --- Games ---

func (h *Handler) adminListGames(c *gin.Context) {
	games, err := h.admin.ListGames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *Handler) adminGetGame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "id", Message: "id harus angka"}}})
		return
	}

	game, err := h.admin.GetGame(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, game)
}

type gameRequest struct {
	Name       string  `json:"name" binding:"required"`
	Slug       string  `json:"slug" binding:"required"`
	Category   string  `json:"category" binding:"required,oneof=populer baru webstore"`
	ImageURL   string  `json:"imageUrl" binding:"required,url"`
	UserIDHelp *string `json:"userIdHelp"`
	IsActive   *bool   `json:"isActive" binding:"required"`
}

func (h *Handler) adminCreateGame(c *gin.Context) {
	var req gameRequest
	if !bindJSON(c, &req) {
		return
	}

	game := models.Game{
		Name:       req.Name,
		Slug:       req.Slug,
		Category:   req.Category,
		ImageURL:   req.ImageURL,
		UserIDHelp: req.UserIDHelp,
		IsActive:   *req.IsActive,
	}
	if err := h.admin.CreateGame(c.Request.Context(), &game); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug sudah digunakan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusCreated, game)
}

func (h *Handler) adminUpdateGame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "id", Message: "id harus angka"}}})
		return
	}

	var req gameRequest
	if !bindJSON(c, &req) {
		return
	}

	game := models.Game{
		ID:         id,
		Name:       req.Name,
		Slug:       req.Slug,
		Category:   req.Category,
		ImageURL:   req.ImageURL,
		UserIDHelp: req.UserIDHelp,
		IsActive:   *req.IsActive,
	}
	if err := h.admin.UpdateGame(c.Request.Context(), &game); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Game tidak ditemukan."})
		case errors.Is(err, store.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Slug sudah digunakan."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		}
		return
	}
	c.JSON(http.StatusOK, game)
}

func (h *Handler) adminDeleteGame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "id", Message: "id harus angka"}}})
		return
	}

	if err := h.admin.DeleteGame(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game dan semua produk terkait berhasil dihapus."})
}

// --- Products ---

func (h *Handler) adminListProducts(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "id", Message: "id harus angka"}}})
		return
	}

	products, err := h.admin.ListProducts(c.Request.Context(), gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, products)
}

type productRequest struct {
	GameID      int64   `json:"gameId" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       int64   `json:"price" binding:"required,gt=0"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive" binding:"required"`
}

func (h *Handler) adminCreateProduct(c *gin.Context) {
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}

	product := models.Product{
		GameID:      req.GameID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		IsActive:    *req.IsActive,
	}
	if err := h.admin.CreateProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) adminUpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "productId", Message: "productId harus angka"}}})
		return
	}

	var req productRequest
	if !bindJSON(c, &req) {
		return
	}

	product := models.Product{
		ID:          id,
		GameID:      req.GameID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		IsActive:    *req.IsActive,
	}
	if err := h.admin.UpdateProduct(c.Request.Context(), &product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produk tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) adminDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "productId", Message: "productId harus angka"}}})
		return
	}

	if err := h.admin.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produk tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produk berhasil dihapus."})
}

// --- Promotions ---

func (h *Handler) adminListPromotions(c *gin.Context) {
	promos, err := h.admin.ListPromotions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, promos)
}

type promotionRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	ImageURL    string  `json:"imageUrl" binding:"required,url"`
	LinkURL     *string `json:"linkUrl" binding:"omitempty,url"`
	IsActive    *bool   `json:"isActive" binding:"required"`
}

func (h *Handler) adminCreatePromotion(c *gin.Context) {
	var req promotionRequest
	if !bindJSON(c, &req) {
		return
	}

	promo := models.Promotion{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		IsActive:    *req.IsActive,
	}
	if err := h.admin.CreatePromotion(c.Request.Context(), &promo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusCreated, promo)
}

func (h *Handler) adminUpdatePromotion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "id", Message: "id harus angka"}}})
		return
	}

	var req promotionRequest
	if !bindJSON(c, &req) {
		return
	}

	promo := models.Promotion{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		IsActive:    *req.IsActive,
	}
	if err := h.admin.UpdatePromotion(c.Request.Context(), &promo); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promosi tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, promo)
}

func (h *Handler) adminDeletePromotion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "id", Message: "id harus angka"}}})
		return
	}

	if err := h.admin.DeletePromotion(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promosi tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Promosi berhasil dihapus."})
}

// --- Users ---

func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, users)
}

type setRewardsRequest struct {
	RewardsBalance *int64 `json:"rewardsBalance" binding:"required,min=0"`
}

func (h *Handler) adminSetRewards(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "id", Message: "id harus angka"}}})
		return
	}

	var req setRewardsRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.admin.SetRewardsBalance(c.Request.Context(), id, *req.RewardsBalance)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Saldo rewards untuk %s berhasil diperbarui.", user.FullName),
		"user":    user,
	})
}

func (h *Handler) adminGetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "id", Message: "id harus angka"}}})
		return
	}

	user, txs, err := h.admin.GetUserDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "transactions": txs})
}
