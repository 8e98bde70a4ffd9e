package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSkipsUnmappedGames(t *testing.T) {
	v := NewGameValidator("http://unused", "m1", "secret")

	nickname, err := v.Validate(context.Background(), "genshin-impact", "800123456", "")
	require.NoError(t, err)
	assert.Equal(t, "Player: 800123456", nickname)
}

func TestValidateMobileLegendsRequiresZone(t *testing.T) {
	v := NewGameValidator("http://unused", "m1", "secret")

	_, err := v.Validate(context.Background(), "mobile-legends", "123456", "")
	assert.ErrorIs(t, err, ErrZoneRequired)
}

func TestValidateSuccess(t *testing.T) {
	wantSig := md5.Sum([]byte("m1:secret"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/merchant/m1/cek-username/mobilelegends", r.URL.Path)
		assert.Equal(t, "123456(7890)", r.URL.Query().Get("user_id"))
		assert.Equal(t, hex.EncodeToString(wantSig[:]), r.URL.Query().Get("signature"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":1,"data":{"is_valid":true,"username":"DragonSlayer"}}`))
	}))
	defer srv.Close()

	v := NewGameValidator(srv.URL, "m1", "secret")

	nickname, err := v.Validate(context.Background(), "mobile-legends", "123456", "7890")
	require.NoError(t, err)
	assert.Equal(t, "DragonSlayer", nickname)
}

func TestValidateRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":0,"error_msg":"User ID tidak terdaftar"}`))
	}))
	defer srv.Close()

	v := NewGameValidator(srv.URL, "m1", "secret")

	_, err := v.Validate(context.Background(), "free-fire", "999", "")
	var vfe *ValidationFailedError
	require.ErrorAs(t, err, &vfe)
	assert.Equal(t, "User ID tidak terdaftar", vfe.Message)
}

func TestValidateRejectionFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":0,"data":{"is_valid":false}}`))
	}))
	defer srv.Close()

	v := NewGameValidator(srv.URL, "m1", "secret")

	_, err := v.Validate(context.Background(), "free-fire", "999", "")
	var vfe *ValidationFailedError
	require.ErrorAs(t, err, &vfe)
	assert.Equal(t, "Nickname tidak ditemukan atau User ID tidak valid.", vfe.Message)
}
