package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"rentdesk/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletEngine(e *env, u *models.User) *gin.Engine {
	h := NewWalletHandler(e.finance)
	r := gin.New()
	g := r.Group("/transactions", as(u))
	g.GET("", h.History)
	g.GET("/wallet", h.Get)
	g.GET("/fund-wallet", h.Fund)
	g.GET("/verify/:reference", h.Verify)
	return r
}

func TestWalletFundAndVerify(t *testing.T) {
	e := newEnv(t)
	r := walletEngine(e, e.tenant)

	w := send(r, http.MethodGet, "/transactions/fund-wallet", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `"\"amount\" is required"`, w.Body.String())

	w = send(r, http.MethodGet, "/transactions/fund-wallet?amount=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `"\"amount\" must be a number"`, w.Body.String())

	w = send(r, http.MethodGet, "/transactions/fund-wallet?amount=25", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var link struct {
		Reference string `json:"reference"`
		Gateway   string `json:"gateway"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	assert.Equal(t, "STUB", link.Gateway)

	w = send(walletEngine(e, e.other), http.MethodGet, "/transactions/verify/"+link.Reference, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(r, http.MethodGet, "/transactions/verify/"+link.Reference, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(r, http.MethodGet, "/transactions/wallet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wallet models.Wallet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wallet))
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(25)), wallet.Balance.String())

	w = send(r, http.MethodGet, "/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Len(t, history, 1)
}
