package service

import (
	"context"
	"fmt"
	"time"

	"istorepro/internal/checkout"
	"istorepro/internal/dto"
	"istorepro/internal/model"
	"istorepro/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CrediarioService serves the installments of finalized crediário sales.
type CrediarioService interface {
	Listar(ctx context.Context, filter dto.ParcelaFilter) (*dto.ListResponse[dto.ParcelaResponse], error)
	// Pagar registers a (possibly partial) payment on one installment and
	// releases the same amount of the customer's used credit.
	Pagar(ctx context.Context, id uuid.UUID, req dto.PagarParcelaRequest, actor checkout.Actor) (*dto.ParcelaResponse, error)
}

type crediarioService struct {
	repo     repository.CrediarioRepository
	clientes repository.ClienteRepository
	audit    checkout.AuditSink
	now      func() time.Time
}

func NewCrediarioService(repo repository.CrediarioRepository, clientes repository.ClienteRepository, auditoria repository.AuditoriaRepository) CrediarioService {
	return &crediarioService{repo: repo, clientes: clientes, audit: auditSink{repo: auditoria}, now: time.Now}
}

func (s *crediarioService) Listar(ctx context.Context, filter dto.ParcelaFilter) (*dto.ListResponse[dto.ParcelaResponse], error) {
	parcelas, total, err := s.repo.List(ctx, filter, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]dto.ParcelaResponse, 0, len(parcelas))
	for i := range parcelas {
		out = append(out, parcelaToResponse(&parcelas[i]))
	}
	resp := dto.NewListResponse(out, total, filter.Paginacao)
	return &resp, nil
}

func (s *crediarioService) Pagar(ctx context.Context, id uuid.UUID, req dto.PagarParcelaRequest, actor checkout.Actor) (*dto.ParcelaResponse, error) {
	var parcela *model.ParcelaCrediario
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return notFound(err, ErrParcelaNaoEncontrada)
		}
		if p.Status == model.ParcelaPaga {
			return ErrParcelaPaga
		}
		if req.Valor.GreaterThan(p.Restante()) {
			return ErrValorAcimaDaParcela
		}
		p.ValorPago = p.ValorPago.Add(req.Valor)
		if p.Restante().IsZero() {
			now := s.now()
			p.Status = model.ParcelaPaga
			p.PagaEm = &now
		}
		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		if err := s.clientes.AddCreditoUsadoTx(tx, p.ClienteID, req.Valor.Neg()); err != nil {
			return err
		}
		parcela = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("parcela_id", id.String()).
		Str("venda_id", parcela.VendaID).
		Str("valor", req.Valor.StringFixed(2)).
		Str("status", parcela.Status).
		Msg("crediário installment paid")
	s.audit.Record(ctx, checkout.AuditEntry{
		Action:     "UPDATE",
		EntityType: "parcela_crediario",
		EntityID:   id.String(),
		Message:    fmt.Sprintf("Pagamento de %s na parcela %d da venda %s", req.Valor.StringFixed(2), parcela.Numero, parcela.VendaID),
		ActorID:    actor.ID,
		ActorName:  actor.Name,
	})

	resp := parcelaToResponse(parcela)
	return &resp, nil
}

func parcelaToResponse(p *model.ParcelaCrediario) dto.ParcelaResponse {
	return dto.ParcelaResponse{
		ID:          p.ID.String(),
		VendaID:     p.VendaID,
		ClienteID:   p.ClienteID.String(),
		Numero:      p.Numero,
		Vencimento:  p.Vencimento.Format("2006-01-02"),
		Valor:       p.Valor,
		ValorPago:   p.ValorPago,
		Restante:    p.Restante(),
		Juros:       p.Juros,
		Amortizacao: p.Amortizacao,
		Status:      p.Status,
	}
}
