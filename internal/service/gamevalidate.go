package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dpstore-backend/internal/util"

	"go.uber.org/zap"
)

// ErrZoneRequired is returned when a Mobile Legends lookup arrives without a
// zone id.
var ErrZoneRequired = errors.New("zone id dibutuhkan untuk mobile legends")

// ValidationFailedError carries the upstream rejection message for the 404
// response body.
type ValidationFailedError struct {
	Message string
}

func (e *ValidationFailedError) Error() string { return e.Message }

// gameCodeMap maps storefront slugs to the upstream game codes that support
// username lookup. Slugs outside the map skip validation entirely.
var gameCodeMap = map[string]string{
	"mobile-legends": "mobilelegends",
	"free-fire":      "freefire",
}

// GameValidator checks a player's game account id against the apigames.id
// username endpoint.
type GameValidator struct {
	baseURL    string
	merchantID string
	secretKey  string
	client     *http.Client
	logger     *zap.Logger
}

// NewGameValidator creates a new game account validator
func NewGameValidator(baseURL, merchantID, secretKey string) *GameValidator {
	return &GameValidator{
		baseURL:    baseURL,
		merchantID: merchantID,
		secretKey:  secretKey,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     util.GetLogger(),
	}
}

type upstreamResponse struct {
	Status int `json:"status"`
	Data   *struct {
		IsValid  bool   `json:"is_valid"`
		Username string `json:"username"`
	} `json:"data"`
	ErrorMsg string `json:"error_msg"`
	Message  string `json:"message"`
}

// signature authenticates the merchant to the upstream API.
func (v *GameValidator) signature() string {
	sum := md5.Sum([]byte(v.merchantID + ":" + v.secretKey))
	return hex.EncodeToString(sum[:])
}

// Validate resolves a game account id to its nickname. Games without upstream
// support echo back "Player: <id>" without a network call. Mobile Legends
// requires a zone id and sends the account as "id(zone)".
func (v *GameValidator) Validate(ctx context.Context, gameSlug, userID, zoneID string) (string, error) {
	gameCode, ok := gameCodeMap[gameSlug]
	if !ok {
		return fmt.Sprintf("Player: %s", userID), nil
	}

	requestUserID := userID
	if gameCode == "mobilelegends" {
		if zoneID == "" {
			return "", ErrZoneRequired
		}
		requestUserID = fmt.Sprintf("%s(%s)", userID, zoneID)
	}

	endpoint := fmt.Sprintf("%s/merchant/%s/cek-username/%s?user_id=%s&signature=%s",
		v.baseURL, v.merchantID, gameCode, url.QueryEscape(requestUserID), v.signature())

	start := time.Now()
	defer func() {
		util.GameIDValidationLatency.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("Game id validation call failed",
			zap.String("game", gameSlug),
			zap.Error(err))
		return "", &ValidationFailedError{Message: "User ID tidak ditemukan atau terjadi kesalahan."}
	}
	defer resp.Body.Close()

	var body upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &ValidationFailedError{Message: "User ID tidak ditemukan atau terjadi kesalahan."}
	}

	if body.Status == 1 && body.Data != nil && body.Data.IsValid {
		return body.Data.Username, nil
	}

	msg := body.ErrorMsg
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = "Nickname tidak ditemukan atau User ID tidak valid."
	}
	v.logger.Warn("Game id validation rejected",
		zap.String("game", gameSlug),
		zap.String("user_id", requestUserID),
		zap.String("reason", msg))
	return "", &ValidationFailedError{Message: msg}
}
