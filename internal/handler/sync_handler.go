package handler

import (
	"net/http"

	"github.com/cropchain/sync-service/internal/sync"
	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncer   *sync.Syncer
	verifier *sync.Verifier
}

func NewSyncHandler(syncer *sync.Syncer, verifier *sync.Verifier) *SyncHandler {
	return &SyncHandler{
		syncer:   syncer,
		verifier: verifier,
	}
}

// RunSync 触发一次批量同步并返回汇总
func (h *SyncHandler) RunSync(c *gin.Context) {
	summary, err := h.syncer.Run(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	message := "batch sync completed"
	if summary.Failed > 0 {
		message = "batch sync completed with failures"
	}
	respondSuccess(c, http.StatusOK, message, summary)
}

// RunVerify 触发一次链上读回校验并返回报告
func (h *SyncHandler) RunVerify(c *gin.Context) {
	report, err := h.verifier.Verify(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, "verify completed", report)
}
