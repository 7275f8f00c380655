package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"istorepro/internal/infra"
	"istorepro/internal/model"
	"istorepro/internal/repository"

	"github.com/rs/zerolog/log"
)

const MaxReciboRetries = 5

// EmailQueue is where rendered receipts go when the customer asked for email.
type EmailQueue interface {
	EnqueueEmail(ctx context.Context, job EmailJob) error
}

// ReciboWorker renders sale receipts.
type ReciboWorker struct {
	vendas      repository.VendaRepository
	termos      repository.TermoGarantiaRepository
	recibos     repository.ReciboRepository
	emails      EmailQueue
	loja        string
	storagePath string
	render      func(infra.ReceiptData, string) (string, error)
	now         func() time.Time
}

func NewReciboWorker(
	vendas repository.VendaRepository,
	termos repository.TermoGarantiaRepository,
	recibos repository.ReciboRepository,
	emails EmailQueue,
	loja, storagePath string,
) *ReciboWorker {
	return &ReciboWorker{
		vendas:      vendas,
		termos:      termos,
		recibos:     recibos,
		emails:      emails,
		loja:        loja,
		storagePath: storagePath,
		render:      infra.GenerateReceiptPDF,
		now:         time.Now,
	}
}

func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var job ReciboJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return err
	}
	rec, err := w.recibos.FindByVendaID(ctx, job.VendaID)
	if err != nil {
		rec = &model.Recibo{VendaID: job.VendaID, Estado: model.ReciboPendente}
	}
	if job.Email != "" {
		email := job.Email
		rec.EmailDestino = &email
	}

	path, err := w.renderVenda(ctx, job.VendaID)
	if err != nil {
		w.scheduleRetry(ctx, rec, err)
		return nil
	}

	rec.Estado = model.ReciboGerado
	rec.PDFPath = &path
	rec.LastError = nil
	rec.NextRetryAt = nil
	if err := w.save(ctx, rec); err != nil {
		return err
	}
	log.Info().Str("venda_id", job.VendaID).Str("pdf", path).Msg("recibo_worker: receipt generated")

	if rec.EmailDestino != nil && *rec.EmailDestino != "" && !rec.EmailEnviado {
		return w.emails.EnqueueEmail(ctx, EmailJob{VendaID: job.VendaID, To: *rec.EmailDestino, PDFPath: path})
	}
	return nil
}

func (w *ReciboWorker) renderVenda(ctx context.Context, vendaID string) (string, error) {
	venda, err := w.vendas.FindByID(ctx, vendaID)
	if err != nil {
		return "", fmt.Errorf("venda %s: %w", vendaID, err)
	}
	data := infra.ReceiptData{Loja: w.loja, Venda: venda}
	if termo, err := w.termos.FindByNome(ctx, venda.TermoGarantia); err == nil {
		data.TermoGarantia = termo.Conteudo
	}
	return w.render(data, w.storagePath)
}

// scheduleRetry marks the receipt failed and lets the retry cron pick it up
// with exponential backoff, up to MaxReciboRetries.
func (w *ReciboWorker) scheduleRetry(ctx context.Context, rec *model.Recibo, cause error) {
	rec.Estado = model.ReciboErro
	rec.RetryCount++
	msg := cause.Error()
	rec.LastError = &msg
	if rec.RetryCount < MaxReciboRetries {
		next := w.now().Add(retryBackoff(rec.RetryCount))
		rec.NextRetryAt = &next
	} else {
		rec.NextRetryAt = nil
	}
	log.Warn().Err(cause).
		Str("venda_id", rec.VendaID).
		Int("retry_count", rec.RetryCount).
		Msg("recibo_worker: render failed")
	if err := w.save(ctx, rec); err != nil {
		log.Error().Err(err).Str("venda_id", rec.VendaID).Msg("recibo_worker: failed to persist receipt state")
	}
}

func (w *ReciboWorker) save(ctx context.Context, rec *model.Recibo) error {
	if rec.CreatedAt.IsZero() {
		return w.recibos.Upsert(ctx, rec)
	}
	return w.recibos.Update(ctx, rec)
}

// retryBackoff is 1m, 2m, 4m… capped at one hour.
func retryBackoff(attempt int) time.Duration {
	d := time.Minute * time.Duration(1<<uint(attempt-1))
	if d > time.Hour {
		return time.Hour
	}
	return d
}
