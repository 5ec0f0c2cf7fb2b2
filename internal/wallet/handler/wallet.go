package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"aerovoyage/internal/wallet/service"
	httputil "aerovoyage/pkg/http"
	"aerovoyage/pkg/logger"
	"aerovoyage/pkg/model"
)

type WalletHandler struct {
	service service.WalletService
	log     *logger.Logger
}

func NewWalletHandler(service service.WalletService, log *logger.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log,
	}
}

func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("user_id")
	if userID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "user_id parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "Get", "operation", "WriteJSON", "error", err)
		}
		return
	}

	wallet, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, wallet); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) TopUp(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("user_id")
	if userID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "user_id parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "TopUp", "operation", "WriteJSON", "error", err)
		}
		return
	}

	var topUp model.WalletTopUp
	if err := json.NewDecoder(r.Body).Decode(&topUp); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "TopUp", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	wallet, err := h.service.TopUp(r.Context(), userID, topUp.Amount)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "TopUp", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, wallet); err != nil {
		h.log.Error("failed to write success response", "handler", "TopUp", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/wallets/:user_id", h.Get)
	router.POST("/api/v1/wallets/:user_id/topup", h.TopUp)
}
