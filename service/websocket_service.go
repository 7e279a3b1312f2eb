package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nekesuresh/RFP/types"
	log "github.com/sirupsen/logrus"
)

const (
	wsReadLimit    = 512 * 1024
	wsReadDeadline = 60 * time.Second
)

// WebSocketService streams model answers token by token. Each ask message
// runs retrieval first, then streams the grounded completion back as token
// frames followed by a done frame.
type WebSocketService struct {
	retriever *RetrieverAgent
	ai        AIService
	upgrader  websocket.Upgrader
}

func NewWebSocketService(retriever *RetrieverAgent, ai AIService) *WebSocketService {
	return &WebSocketService{
		retriever: retriever,
		ai:        ai,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorln("upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("websocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			log.Errorln("unmarshal error:", err)
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			if err := conn.WriteJSON(types.WebSocketResponse{Type: types.TypeWebsocketPong}); err != nil {
				log.Errorln("write error:", err)
			}
		case types.TypeWebsocketAsk:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var payload types.WebSocketAskPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil || payload.Query == "" {
				s.writeError(conn, "invalid ask payload")
				continue
			}
			if err := s.streamAnswer(r, conn, payload.Query); err != nil {
				log.Errorln("stream error:", err)
				s.writeError(conn, "failed to answer query")
			}
		default:
			log.Warnln("invalid message type:", req.Type)
		}
	}
}

func (s *WebSocketService) streamAnswer(r *http.Request, conn *websocket.Conn, query string) error {
	retrieval, err := s.retriever.Retrieve(r.Context(), query)
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf(`Use the following document context to answer the question. If the context does not contain the answer, say so.

CONTEXT:
%s

QUESTION: %s`, retrieval.Context, query)

	err = s.ai.ChatStream(r.Context(), []types.Message{{Role: "user", Content: prompt}}, func(token string) {
		if token == "" {
			return
		}
		if err := conn.WriteJSON(types.WebSocketResponse{
			Type:    types.TypeWebsocketToken,
			Payload: types.WebSocketTokenResponse{Token: token},
		}); err != nil {
			log.Errorln("write error:", err)
		}
	})
	if err != nil {
		return err
	}

	return conn.WriteJSON(types.WebSocketResponse{Type: types.TypeWebsocketDone})
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: message,
	}); err != nil {
		log.Errorln("write error:", err)
	}
}
