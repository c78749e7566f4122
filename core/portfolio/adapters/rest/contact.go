package rest

import (
	"log/slog"
	"net/http"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/api/serde"
	"portfolio/modules/middleware/problem"
)

const (
	contactAcceptedMessage = "Thank you for your message. I'll get back to you soon!"
	contactLoggedMessage   = "Email sending is disabled in debug mode, but your message was received."
)

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var body ContactBody
	if err := serde.ParseJsonBody(r.Body, &body); err != nil {
		slog.DebugContext(r.Context(), "malformed contact body", slog.Any("error", err))
		problem.Write(w, problem.BadRequest("request body must be a JSON object with name, email, subject and message"))
		return
	}

	receipt, err := h.svc.SubmitContact(r.Context(), domain.ContactRequest(body))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	msg := contactAcceptedMessage
	if !receipt.Live {
		msg = contactLoggedMessage
	}
	serde.WriteJSON(w, http.StatusOK, ContactResponse{
		Success:   true,
		Message:   msg,
		ReceiptID: receipt.ID.String(),
	})
}
