package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cropchain/sync-service/internal/ledger"
	"github.com/cropchain/sync-service/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader 可编程的读取器替身
type fakeReader struct {
	inv *model.Investment
	err error
}

func (r *fakeReader) ReadInvestment(ctx context.Context, contractId int64) (*model.Investment, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.inv, nil
}

func setupRouter(reader ledger.Reader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewInvestmentHandler(reader)
	r.GET("/api/v1/investments/:id", h.GetInvestment)
	return r
}

func TestGetInvestmentReturnsRecord(t *testing.T) {
	r := setupRouter(&fakeReader{inv: &model.Investment{
		ContractId: 1,
		CropName:   "Oranges",
	}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/investments/1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), "Oranges")
}

func TestGetInvestmentNotFound(t *testing.T) {
	r := setupRouter(&fakeReader{err: ledger.ErrRecordNotFound})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/investments/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
}

func TestGetInvestmentTransportError(t *testing.T) {
	r := setupRouter(&fakeReader{err: &ledger.TransportError{Err: errors.New("node unreachable")}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/investments/1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetInvestmentRejectsBadId(t *testing.T) {
	r := setupRouter(&fakeReader{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/investments/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
