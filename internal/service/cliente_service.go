package service

import (
	"context"
	"time"

	"istorepro/internal/dto"
	"istorepro/internal/infra"
	"istorepro/internal/model"
	"istorepro/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddressLookup resolves a Brazilian postal code.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*infra.Endereco, error)
}

type ClienteService interface {
	Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ListResponse[dto.ClienteResponse], error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	AtualizarLimite(ctx context.Context, id uuid.UUID, req dto.LimiteCreditoRequest) (*dto.ClienteResponse, error)
	BuscarCEP(ctx context.Context, cep string) (*dto.EnderecoResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
	cep  AddressLookup
}

func NewClienteService(repo repository.ClienteRepository, cep AddressLookup) ClienteService {
	return &clienteService{repo: repo, cep: cep}
}

func (s *clienteService) Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{ID: uuid.New(), Ativo: true}
	if err := s.apply(ctx, c, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrClienteNaoEncontrado)
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ListResponse[dto.ClienteResponse], error) {
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, clienteToResponse(&clientes[i]))
	}
	resp := dto.NewListResponse(out, total, filter.Paginacao)
	return &resp, nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrClienteNaoEncontrado)
	}
	if err := s.apply(ctx, c, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, ErrClienteNaoEncontrado)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *clienteService) AtualizarLimite(ctx context.Context, id uuid.UUID, req dto.LimiteCreditoRequest) (*dto.ClienteResponse, error) {
	if err := s.repo.UpdateLimiteCredito(ctx, id, req.Limite); err != nil {
		return nil, notFound(err, ErrClienteNaoEncontrado)
	}
	return s.ObterPorID(ctx, id)
}

func (s *clienteService) BuscarCEP(ctx context.Context, cep string) (*dto.EnderecoResponse, error) {
	if s.cep == nil {
		return nil, infra.ErrCircuitOpen
	}
	e, err := s.cep.Lookup(ctx, cep)
	if err != nil {
		return nil, err
	}
	return &dto.EnderecoResponse{CEP: e.CEP, Logradouro: e.Logradouro, Bairro: e.Bairro, Cidade: e.Cidade, UF: e.UF}, nil
}

// apply copies req onto c. When a CEP is given and the street fields are
// blank, they are filled from the postal-code lookup; a failed lookup is
// not an error.
func (s *clienteService) apply(ctx context.Context, c *model.Cliente, req dto.ClienteRequest) error {
	c.Nome = req.Nome
	c.CPF = trimmed(req.CPF)
	c.Telefone = trimmed(req.Telefone)
	c.Email = trimmed(req.Email)
	c.CEP = trimmed(req.CEP)
	c.Logradouro = trimmed(req.Logradouro)
	c.Numero = trimmed(req.Numero)
	c.Bairro = trimmed(req.Bairro)
	c.Cidade = trimmed(req.Cidade)
	c.UF = trimmed(req.UF)
	c.PermiteCrediario = req.PermiteCrediario
	c.LimiteCredito = req.LimiteCredito
	c.DataNascimento = nil
	if req.DataNascimento != nil && *req.DataNascimento != "" {
		dn, err := time.Parse("2006-01-02", *req.DataNascimento)
		if err != nil {
			return err
		}
		c.DataNascimento = &dn
	}

	if c.CEP != nil && c.Logradouro == nil && s.cep != nil {
		if e, err := s.cep.Lookup(ctx, *c.CEP); err == nil {
			c.Logradouro = optStr(e.Logradouro)
			if c.Bairro == nil {
				c.Bairro = optStr(e.Bairro)
			}
			if c.Cidade == nil {
				c.Cidade = optStr(e.Cidade)
			}
			if c.UF == nil {
				c.UF = optStr(e.UF)
			}
		}
	}
	return nil
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	disponivel := c.LimiteCredito.Sub(c.CreditoUsado)
	if disponivel.IsNegative() {
		disponivel = decimal.Zero
	}
	resp := dto.ClienteResponse{
		ID:                c.ID.String(),
		Nome:              c.Nome,
		CPF:               c.CPF,
		Telefone:          c.Telefone,
		Email:             c.Email,
		CEP:               c.CEP,
		Logradouro:        c.Logradouro,
		Numero:            c.Numero,
		Bairro:            c.Bairro,
		Cidade:            c.Cidade,
		UF:                c.UF,
		PermiteCrediario:  c.PermiteCrediario,
		LimiteCredito:     c.LimiteCredito,
		CreditoUsado:      c.CreditoUsado,
		CreditoDisponivel: disponivel,
	}
	if c.DataNascimento != nil {
		dn := c.DataNascimento.Format("2006-01-02")
		resp.DataNascimento = &dn
	}
	return resp
}
