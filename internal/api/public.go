package api

import (
	"errors"
	"net/http"

	"dpstore-backend/internal/service"
	"dpstore-backend/internal/store"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listGames(c *gin.Context) {
	games, err := h.catalog.ListGames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server saat mengambil games"})
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *Handler) searchGames(c *gin.Context) {
	games, err := h.catalog.SearchGames(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server saat mencari game"})
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *Handler) getGameDetail(c *gin.Context) {
	detail, err := h.catalog.GetGameDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server saat mengambil detail game"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game":     detail.Game,
		"nominals": detail.Nominals,
	})
}

func (h *Handler) listPromotions(c *gin.Context) {
	promos, err := h.catalog.ListPromotions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, promos)
}

func (h *Handler) getGameReviews(c *gin.Context) {
	reviews, err := h.catalog.GetGameReviews(c.Request.Context(), c.Param("gameSlug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server saat mengambil ulasan."})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) listTestimonials(c *gin.Context) {
	ts, err := h.catalog.ListTestimonials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (h *Handler) paymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.PaymentMethods())
}

type validateUserIDRequest struct {
	GameSlug string `json:"gameSlug" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	ZoneID   string `json:"zoneId"`
}

func (h *Handler) validateUserID(c *gin.Context) {
	var req validateUserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parameter gameSlug dan userId dibutuhkan."})
		return
	}

	nickname, err := h.validator.Validate(c.Request.Context(), req.GameSlug, req.UserID, req.ZoneID)
	if err != nil {
		if errors.Is(err, service.ErrZoneRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Zone ID dibutuhkan untuk Mobile Legends."})
			return
		}
		var vfe *service.ValidationFailedError
		if errors.As(err, &vfe) {
			c.JSON(http.StatusNotFound, gin.H{"error": vfe.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nickname": nickname})
}

func (h *Handler) checkTransaction(c *gin.Context) {
	externalID := c.Param("externalId")
	if externalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID Transaksi (External ID) harus diisi."})
		return
	}

	t, err := h.orders.CheckByExternalID(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaksi tidak ditemukan."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server saat mengecek transaksi."})
		return
	}
	c.JSON(http.StatusOK, decorateTransactionDetail(t))
}

type createTransactionRequest struct {
	ProductID     int64  `json:"productId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	UserGameID    string `json:"userGameId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	EmailForGuest string `json:"emailForGuest" binding:"omitempty,email"`
	UseRewards    bool   `json:"useRewards"`
}

// createTransaction is the order-creation endpoint. Guests must supply an
// email; that check happens before any database work.
func (h *Handler) createTransaction(c *gin.Context) {
	var req createTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	id := currentIdentity(c)
	if id == nil && req.EmailForGuest == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{
			Field:   "emailForGuest",
			Message: "Email harus diisi untuk pembelian sebagai tamu.",
		}}})
		return
	}

	params := &service.CreateOrderParams{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UserGameID:    req.UserGameID,
		PaymentMethod: req.PaymentMethod,
		UseRewards:    req.UseRewards,
	}
	if id != nil {
		params.UserID = &id.ID
		params.UserEmail = id.Email
		params.UserFullName = id.FullName
	} else {
		params.EmailForGuest = &req.EmailForGuest
	}

	t, err := h.orders.CreateOrder(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrProductUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"errors": []FieldError{{
				Field:   "productId",
				Message: "Produk tidak ditemukan atau tidak aktif.",
			}}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan pada server."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Pesanan berhasil dibuat dan menunggu pembayaran.",
		"transaction": t,
	})
}
