package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/movegen-backend/internal/middleware"
	"github.com/benbeisheim/movegen-backend/internal/service"
	"github.com/benbeisheim/movegen-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	boardService *service.BoardService
}

func NewWebSocketController(boardService *service.BoardService) *WebSocketController {
	return &WebSocketController{
		boardService: boardService,
	}
}

type movesPayload struct {
	Square string         `json:"square"`
	Moves  []moveResponse `json:"moves"`
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	boardID := c.Params("boardId")
	clientID, _ := c.Locals(middleware.ClientIDLocal).(string)

	// Register this connection with the board
	if err := wsc.boardService.RegisterConnection(boardID, clientID, c); err != nil {
		if errors.Is(err, service.ErrConnectionExists) {
			// keep the healthy connection, reject the new one
			c.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
			)
		} else {
			log.Warnf("failed to register connection: %v", err)
		}
		c.Close()
		return
	}
	log.Debugf("websocket connected: board %s client %s", boardID, clientID)

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.reply(boardID, clientID, ws.ErrorMessage("malformed message"))
			continue
		}

		resp, err := wsc.handleMessage(boardID, msg)
		if err != nil {
			log.Debugf("handle error: %v", err)
			wsc.reply(boardID, clientID, ws.ErrorMessage(err.Error()))
			continue
		}
		if resp != nil {
			wsc.reply(boardID, clientID, *resp)
		}
	}

	// Clean up when connection closes
	wsc.boardService.UnregisterConnection(boardID, clientID)
}

func (wsc *WebSocketController) reply(boardID, clientID string, msg ws.Message) {
	if err := wsc.boardService.Send(boardID, clientID, msg); err != nil {
		log.Debugf("reply to client %s: %v", clientID, err)
	}
}

// handleMessage applies one client message. Mutations are answered by the
// session's boardState broadcast, so they return no direct reply.
func (wsc *WebSocketController) handleMessage(boardID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeAddPiece:
		var p ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, err
		}
		return nil, wsc.boardService.AddPiece(boardID, p.Square, p.Color, p.Type)

	case ws.MessageTypeRemovePiece:
		var p ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, err
		}
		return nil, wsc.boardService.RemovePiece(boardID, p.Square)

	case ws.MessageTypeReset:
		return nil, wsc.boardService.ResetBoard(boardID)

	case ws.MessageTypePieceMoves:
		var p ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, err
		}
		moves, err := wsc.boardService.PieceMoves(boardID, p.Square)
		if err != nil {
			return nil, err
		}
		resp, err := ws.NewMessage(ws.MessageTypeMoves, movesPayload{Square: p.Square, Moves: toMoveResponses(moves)})
		if err != nil {
			return nil, err
		}
		return &resp, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
