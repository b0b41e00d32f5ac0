package handler

import (
	"net/http"

	notificationapp "github.com/tarfea/dashboard-api/internal/application/notification"
	"github.com/tarfea/dashboard-api/internal/domain"
	"github.com/tarfea/dashboard-api/internal/pkg/validate"
)

type NotificationHandler struct {
	service notificationapp.Service
}

func NewNotificationHandler(service notificationapp.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	items, err := h.service.Feed(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.DismissRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.service.Dismiss(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	// Repeat dismissals are acknowledged, not rejected.
	msg := "Notification dismissed"
	if !created {
		msg = "Already dismissed"
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: msg})
}

func (h *NotificationHandler) Undismiss(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.DismissRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.service.Undismiss(r.Context(), userID, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Notification restored"})
}

func (h *NotificationHandler) Remind(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.RemindRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.service.Remind(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: result})
}
