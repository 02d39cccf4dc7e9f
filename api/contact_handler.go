package api

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-backend/errs"
	"portfolio-backend/services"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	mailer    MailSender
}

func newContactHandler(mailer MailSender) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		mailer:    mailer,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (c contactRequest) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Message, validation.Required),
	)
}

// submitContact validates the payload and forwards it through the mail
// relay. Submissions are never persisted.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxBytesErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := req.Validate(); err != nil {
			apiErr := errs.BadRequest("All fields are required.")
			apiErr.Details = err.Error()
			h.responder.WriteError(w, apiErr)
			return
		}

		if !h.mailer.Configured() {
			h.responder.WriteError(w, errs.NewConfigurationError("Email"))
			return
		}

		submission := services.ContactSubmission{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		}

		if err := h.mailer.Send(r.Context(), submission); err != nil {
			h.logger.Error().Err(err).Msg("Failed to forward contact submission")
			h.responder.WriteError(w, errs.NewDeliveryError(err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Message sent successfully!",
		})
	}
}
