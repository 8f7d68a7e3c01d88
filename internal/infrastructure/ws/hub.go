package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"

	"github.com/jhoicas/apimarket/internal/application/inventory"
)

var _ inventory.StockNotifier = (*Hub)(nil)

// Client es lo mínimo que el hub necesita de una conexión (*websocket.Conn lo cumple).
type Client interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// StockUpdate mensaje enviado a los clientes cuando cambia el stock de un producto.
type StockUpdate struct {
	Type        string `json:"type"`
	ProductID   int64  `json:"product_id"`
	Stock       int    `json:"stock"`
	Source      string `json:"source"`
	ReferenceID int64  `json:"reference_id"`
}

const (
	stockUpdateType = "stock_update"
	// clientQueue mensajes pendientes por cliente; un cliente con la cola llena se desconecta.
	clientQueue = 16
	writeWait   = 10 * time.Second
)

// subscriber conexión registrada con su propia cola de envío, vaciada por writePump.
type subscriber struct {
	conn Client
	send chan []byte
}

// Hub mantiene los clientes conectados y difunde las actualizaciones de stock.
// Solo Run modifica el mapa de clientes; cada cliente escribe en su propia goroutine.
type Hub struct {
	clients    map[Client]*subscriber
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        zerolog.Logger
}

// NewHub crea el hub. buffer es la capacidad de la cola de difusión; si se llena, los mensajes se descartan.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 256
	}
	return &Hub{
		clients:    make(map[Client]*subscriber),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, buffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run procesa altas, bajas y difusiones hasta que ctx se cancela.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c, sub := range h.clients {
				h.drop(c, sub)
			}
			h.mutex.Unlock()
			return

		case c := <-h.register:
			sub := &subscriber{conn: c, send: make(chan []byte, clientQueue)}
			h.mutex.Lock()
			h.clients[c] = sub
			n := len(h.clients)
			h.mutex.Unlock()
			go h.writePump(sub)
			h.log.Debug().Int("clients", n).Msg("cliente ws conectado")

		case c := <-h.unregister:
			h.mutex.Lock()
			if sub, ok := h.clients[c]; ok {
				h.drop(c, sub)
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for c, sub := range h.clients {
				select {
				case sub.send <- msg:
				default:
					h.log.Warn().Msg("cliente ws lento, desconectado")
					h.drop(c, sub)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// drop quita al cliente y cierra su cola y su conexión. Requiere h.mutex.
func (h *Hub) drop(c Client, sub *subscriber) {
	delete(h.clients, c)
	close(sub.send)
	_ = c.Close()
}

// writePump escribe los mensajes del cliente con un plazo por escritura; si falla, pide la baja.
func (h *Hub) writePump(sub *subscriber) {
	for msg := range sub.send {
		_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Msg("escritura ws fallida")
			h.Unregister(sub.conn)
			return
		}
	}
}

// Register agrega un cliente. Si el hub ya se detuvo, cierra la conexión.
func (h *Hub) Register(c Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.Close()
	}
}

// Unregister quita y cierra un cliente.
func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount número de clientes conectados.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// NotifyStock encola un mensaje por cambio. Nunca bloquea a quien confirmó la transacción.
func (h *Hub) NotifyStock(changes []inventory.StockChange) {
	for _, ch := range changes {
		msg, err := json.Marshal(StockUpdate{
			Type:        stockUpdateType,
			ProductID:   ch.ProductID,
			Stock:       ch.Stock,
			Source:      ch.Source,
			ReferenceID: ch.ReferenceID,
		})
		if err != nil {
			h.log.Error().Err(err).Int64("product_id", ch.ProductID).Msg("serializar stock_update")
			continue
		}
		select {
		case h.broadcast <- msg:
		default:
			h.log.Warn().Int64("product_id", ch.ProductID).Msg("cola ws llena, actualización descartada")
		}
	}
}
