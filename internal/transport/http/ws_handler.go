package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"mbti-service/internal/domain"
)

// WSHandler runs the questionnaire over a websocket for clients that prefer a single connection.
type WSHandler struct {
	handler  *Handler
	upgrader websocket.Upgrader
}

func NewWSHandler(handler *Handler) *WSHandler {
	return &WSHandler{
		handler: handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type submitPayload struct {
	Answers domain.AnswerSet `json:"answers"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and answers messages until the client disconnects.
//
// Client messages: "submit" {answers}, "result", "restart".
// Server messages: "questions" on connect, then "result", "cleared" or "error".
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionID(r.Context())
	client := clientIP(r)
	log := h.handler.log.With().Str("session", sessionID).Logger()

	// The upgrade response is built from this header only, so the session cookie has to be carried over.
	conn, err := h.upgrader.Upgrade(w, r, http.Header{"Set-Cookie": w.Header().Values("Set-Cookie")})
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxPayloadBytes)

	service := h.handler.service
	send := func(typ string, payload any) bool {
		if err := conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload}); err != nil {
			log.Debug().Err(err).Msg("ws write error")
			return false
		}
		return true
	}
	sendError := func(message string) bool {
		return send("error", errorPayload{Message: message})
	}

	if !send("questions", service.Questions()) {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		ok := true
		switch inbound.Type {
		case "submit":
			var payload submitPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				ok = sendError("invalid submit payload")
				break
			}
			if !h.handler.allow(r.Context(), h.handler.opts.SubmitLimiters, client) {
				ok = sendError("too many requests, try again later")
				break
			}
			if _, err := service.Submit(r.Context(), sessionID, payload.Answers); err != nil {
				ok = sendError(wsErrorMessage(err))
				break
			}
			ok = h.sendResult(r, sessionID, send, sendError)
		case "result":
			ok = h.sendResult(r, sessionID, send, sendError)
		case "restart":
			if err := service.Start(r.Context(), sessionID); err != nil {
				ok = sendError(wsErrorMessage(err))
				break
			}
			ok = send("cleared", struct{}{})
		default:
			ok = sendError("unsupported message type")
		}
		if !ok {
			return
		}
	}
}

func (h *WSHandler) sendResult(r *http.Request, sessionID string, send func(string, any) bool, sendError func(string) bool) bool {
	result, err := h.handler.service.Result(r.Context(), sessionID)
	if err != nil {
		return sendError(wsErrorMessage(err))
	}
	return send("result", result)
}

func wsErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrIncompleteSubmission):
		return "every question needs an A or B answer"
	case errors.Is(err, domain.ErrResultNotFound):
		return "no result for this session yet"
	default:
		return "internal server error"
	}
}
