package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cropchain/sync-service/internal/ledger"
	"github.com/gin-gonic/gin"
)

type InvestmentHandler struct {
	reader ledger.Reader
}

func NewInvestmentHandler(reader ledger.Reader) *InvestmentHandler {
	return &InvestmentHandler{reader: reader}
}

// GetInvestment 按合同ID查询链上投资记录
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	contractId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || contractId <= 0 {
		respondError(c, http.StatusBadRequest, "invalid contract id")
		return
	}

	inv, err := h.reader.ReadInvestment(c.Request.Context(), contractId)
	if err != nil {
		// 空结果与传输故障必须区分开
		if errors.Is(err, ledger.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "no investment found for this contract id")
			return
		}
		var transportErr *ledger.TransportError
		if errors.As(err, &transportErr) {
			respondError(c, http.StatusBadGateway, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, "ok", ToInvestmentResponse(inv))
}
