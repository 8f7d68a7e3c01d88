package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apimarket/internal/infrastructure/ws"
)

// wsUpgradeRequired rechaza peticiones que no piden upgrade a websocket.
func wsUpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// stockFeed registra la conexión en el hub y la mantiene abierta hasta que el cliente cierra.
func stockFeed(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		hub.Register(conn)
		defer hub.Unregister(conn)
		for {
			// Los clientes solo escuchan; leer detecta el cierre.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

// wsTokenFromQuery copia ?token= a Authorization: los navegadores no envían cabeceras en el handshake.
func wsTokenFromQuery(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		if tok := c.Query("token"); tok != "" {
			c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
		}
	}
	return c.Next()
}
