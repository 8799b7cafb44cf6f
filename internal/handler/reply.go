package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/palaver-dev/palaver/internal/api"
	mw "github.com/palaver-dev/palaver/internal/middleware"
	"github.com/palaver-dev/palaver/internal/utils"
)

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user, ok := mw.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	threadId, err := parseIdParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.CreateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Create(user, threadId, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewReplyResponse(reply))
}

func (h *Handler) GetReply(w http.ResponseWriter, r *http.Request) {
	replyId, err := parseIdParam(chi.URLParam(r, "reply"), "reply ID")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Get(replyId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewReplyResponse(reply))
}

func (h *Handler) ListReplies(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIdParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	replies, err := h.reply.List(threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewRepliesResponse(replies))
}

func (h *Handler) EditReply(w http.ResponseWriter, r *http.Request) {
	user, ok := mw.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	replyId, err := parseIdParam(chi.URLParam(r, "reply"), "reply ID")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.EditReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Edit(user, replyId, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewReplyResponse(reply))
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	user, ok := mw.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	replyId, err := parseIdParam(chi.URLParam(r, "reply"), "reply ID")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.reply.Delete(user, replyId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
