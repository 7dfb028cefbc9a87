package worker

// alerta_worker.go
// Processes low-stock notification jobs from QueueAlertas: when a sale or an
// adjustment leaves an inventario row at or below its minimum, an email goes
// out to the operations address. SMTP runs behind a circuit breaker so a dead
// mail server does not pile up goroutines.

import (
	"context"
	"encoding/json"
	"fmt"

	"libreria/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaStockPayload is the job envelope produced after a stock movement.
type AlertaStockPayload struct {
	InventarioID uint   `json:"inventario_id"`
	Libro        string `json:"libro"`
	PuntoVenta   string `json:"punto_venta"`
	Stock        int    `json:"stock"`
	StockMinimo  int    `json:"stock_minimo"`
}

type AlertaWorker struct {
	mailer  *infra.Mailer
	breaker *infra.CircuitBreaker
	to      string
}

// NewAlertaWorker wires the SMTP mailer and its circuit breaker.
// to is the operations address; empty disables sending.
func NewAlertaWorker(mailer *infra.Mailer, breaker *infra.CircuitBreaker, to string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, breaker: breaker, to: to}
}

func (w *AlertaWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	if w.to == "" {
		log.Debug().Uint("inventario_id", payload.InventarioID).
			Msg("alerta_worker: no alert address configured — skipping")
		return
	}

	asunto := fmt.Sprintf("Stock bajo: %s en %s", payload.Libro, payload.PuntoVenta)
	cuerpo := fmt.Sprintf(
		"El libro %q en el punto de venta %q quedó con %d unidades (mínimo configurado: %d).\n\n"+
			"Inventario ID: %d\n",
		payload.Libro, payload.PuntoVenta, payload.Stock, payload.StockMinimo, payload.InventarioID,
	)

	err := w.breaker.Execute(func() error {
		return w.mailer.SendAlertaStock(w.to, asunto, cuerpo)
	})
	if err != nil {
		log.Error().Err(err).Uint("inventario_id", payload.InventarioID).
			Msg("alerta_worker: failed to send alert email")
		return
	}
	log.Info().Str("to", w.to).Uint("inventario_id", payload.InventarioID).
		Msg("alerta_worker: low stock alert sent")
}
