// handlers/imagechat.go - chat-driven image edit loop (websocket)
package handlers

import (
	"encoding/json"

	"postforge/logger"
	"postforge/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type imageChatMessage struct {
	Type        string `json:"type"`
	ImageID     uint   `json:"image_id,omitempty"`
	Instruction string `json:"instruction,omitempty"`
}

type imageChatReply struct {
	Type  string                 `json:"type"`
	Image *models.GeneratedImage `json:"image,omitempty"`
	Error string                 `json:"error,omitempty"`
}

// ImageChatUpgrade gates the websocket upgrade. Runs after AuthMiddleware and
// RequireTeam, so only members of a team get a connection.
func ImageChatUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ImageChat handles the edit loop: the client sends an instruction against an
// image revision, the server answers with the next revision in the chain.
// GET /ws/image-chat
func ImageChat(c *fiber.Ctx) error {
	return websocket.New(func(conn *websocket.Conn) {
		defer func() {
			if err := conn.Close(); err != nil {
				logger.Error("close websocket connection", "error", err)
			}
		}()

		userID := localUserID(conn)
		if userID == 0 {
			writeChatReply(conn, imageChatReply{Type: "error", Error: "not authenticated"})
			return
		}

		teamID := localTeamID(conn)
		if teamID == 0 {
			writeChatReply(conn, imageChatReply{Type: "error", Error: "no workspace access"})
			return
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var msg imageChatMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				writeChatReply(conn, imageChatReply{Type: "error", Error: "invalid message"})
				continue
			}

			switch msg.Type {
			case "ping":
				writeChatReply(conn, imageChatReply{Type: "pong"})
			case "edit":
				image, err := generationService.EditImage(userID, teamID, msg.ImageID, msg.Instruction)
				if err != nil {
					writeChatReply(conn, imageChatReply{Type: "error", Error: err.Error()})
					continue
				}
				writeChatReply(conn, imageChatReply{Type: "image", Image: image})
			default:
				writeChatReply(conn, imageChatReply{Type: "error", Error: "unknown message type"})
			}
		}
	})(c)
}

func writeChatReply(conn *websocket.Conn, reply imageChatReply) {
	if err := conn.WriteJSON(reply); err != nil {
		logger.Error("write websocket message", "error", err)
	}
}

// localUserID reads the identity set by the auth middleware before upgrade.
func localUserID(conn *websocket.Conn) uint {
	return localUint(conn.Locals("userId"))
}

// localTeamID reads the workspace set by the team guard before upgrade.
func localTeamID(conn *websocket.Conn) uint {
	return localUint(conn.Locals("teamId"))
}

func localUint(raw interface{}) uint {
	switch v := raw.(type) {
	case float64:
		return uint(v)
	case uint:
		return v
	}
	return 0
}
