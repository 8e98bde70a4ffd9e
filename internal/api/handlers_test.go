package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dpstore-backend/internal/auth"
	"dpstore-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testHandler builds a Handler with just enough wiring for routes that fail
// validation before touching any backing service.
func testHandler() *Handler {
	return &Handler{
		catalog: service.NewCatalogService(nil),
		tokens:  auth.NewTokenManager("test-secret", time.Hour),
	}
}

func performJSON(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateTransactionGuestWithoutEmail(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.POST("/api/transactions", h.optionalAuth(), h.createTransaction)

	w := performJSON(router, http.MethodPost, "/api/transactions",
		`{"productId":1,"quantity":1,"userGameId":"123","paymentMethod":"gopay"}`, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "emailForGuest", resp.Errors[0].Field)
	assert.Equal(t, "Email harus diisi untuk pembelian sebagai tamu.", resp.Errors[0].Message)
}

func TestCreateTransactionValidationErrors(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.POST("/api/transactions", h.optionalAuth(), h.createTransaction)

	// Missing productId and non-positive quantity.
	w := performJSON(router, http.MethodPost, "/api/transactions",
		`{"quantity":0,"userGameId":"123","paymentMethod":"gopay","emailForGuest":"a@b.com"}`, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Errors)

	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["productID"] || fields["productId"])
}

func TestUpdateTransactionStatusRejectsNonUUID(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.PUT("/api/admin/transactions/:transactionId/status", h.adminUpdateTransactionStatus)

	w := performJSON(router, http.MethodPut, "/api/admin/transactions/not-a-uuid/status",
		`{"newStatus":"SUCCESS"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UUID")
}

func TestUpdateTransactionStatusRejectsUnknownStatus(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.PUT("/api/admin/transactions/:transactionId/status", h.adminUpdateTransactionStatus)

	w := performJSON(router, http.MethodPut,
		"/api/admin/transactions/7f2c1b4e-9c1a-4c4b-8a55-0f36a1f9d001/status",
		`{"newStatus":"SHIPPED"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentMethods(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.GET("/api/payment-methods", h.paymentMethods)

	w := performJSON(router, http.MethodGet, "/api/payment-methods", "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var methods []service.PaymentMethod
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &methods))
	assert.Len(t, methods, 9)
	assert.Equal(t, "gopay", methods[0].ID)
}

func TestRequireLoginRejectsAnonymous(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.GET("/api/auth/transactions/me", h.optionalAuth(), h.requireLogin(), h.myTransactions)

	w := performJSON(router, http.MethodGet, "/api/auth/transactions/me", "", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Akses ditolak. Anda harus login.")
}

func TestRequireAdminRejectsCustomerToken(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.GET("/api/admin/users", h.requireAdmin(), h.adminListUsers)

	token, err := h.tokens.Issue(auth.Identity{ID: 7, Email: "budi@example.com"})
	require.NoError(t, err)

	w := performJSON(router, http.MethodGet, "/api/admin/users", "",
		map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminAcceptsAdminToken(t *testing.T) {
	h := testHandler()

	token, err := h.tokens.Issue(auth.Identity{IsAdmin: true, Username: "admin"})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/api/admin/ping", h.requireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := performJSON(router, http.MethodGet, "/api/admin/ping", "",
		map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthSetsIdentityFromBearer(t *testing.T) {
	h := testHandler()

	token, err := h.tokens.Issue(auth.Identity{ID: 9, Email: "siti@example.com", FullName: "Siti"})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/whoami", h.optionalAuth(), func(c *gin.Context) {
		id := currentIdentity(c)
		require.NotNil(t, id)
		c.JSON(http.StatusOK, id)
	})

	w := performJSON(router, http.MethodGet, "/whoami", "",
		map[string]string{"Authorization": "Bearer " + token})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "siti@example.com")
}

func TestAdminGetUserRejectsNonNumericID(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.GET("/api/admin/users/:id", h.adminGetUser)

	w := performJSON(router, http.MethodGet, "/api/admin/users/abc", "", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "id harus angka")
}

func TestRegisterValidation(t *testing.T) {
	h := testHandler()
	router := gin.New()
	router.POST("/api/auth/register", h.register)

	w := performJSON(router, http.MethodPost, "/api/auth/register",
		`{"fullName":"Budi","email":"not-an-email","password":"short"}`, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 2)
}
