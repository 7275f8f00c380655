package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"istorepro/internal/repository"

	"github.com/rs/zerolog/log"
)

// Mailer is the slice of infra.Mailer the email worker needs.
type Mailer interface {
	Enabled() bool
	SendRecibo(to, vendaID, pdfPath string) error
}

// EmailWorker mails rendered receipts.
type EmailWorker struct {
	mailer  Mailer
	recibos repository.ReciboRepository
	backoff time.Duration
}

func NewEmailWorker(mailer Mailer, recibos repository.ReciboRepository) *EmailWorker {
	return &EmailWorker{mailer: mailer, recibos: recibos, backoff: time.Second}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var job EmailJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return err
	}
	if job.To == "" {
		log.Warn().Str("venda_id", job.VendaID).Msg("email_worker: empty recipient, skipping")
		return nil
	}
	if !w.mailer.Enabled() {
		return errors.New("SMTP não configurado")
	}

	err := withRetry(ctx, 3, w.backoff, func(int) error {
		return w.mailer.SendRecibo(job.To, job.VendaID, job.PDFPath)
	})
	if err != nil {
		return err
	}
	if rec, err := w.recibos.FindByVendaID(ctx, job.VendaID); err == nil {
		rec.EmailEnviado = true
		_ = w.recibos.Update(ctx, rec)
	}
	log.Info().Str("venda_id", job.VendaID).Str("to", job.To).Msg("email_worker: receipt sent")
	return nil
}
