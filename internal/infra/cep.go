package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrCEPInvalido      = errors.New("CEP deve ter 8 dígitos")
	ErrCEPNaoEncontrado = errors.New("CEP não encontrado")
)

// Endereco is the address a postal code resolves to.
type Endereco struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       any    `json:"erro,omitempty"`
}

// CEPClient looks up Brazilian postal codes over a ViaCEP-compatible API.
// Calls go through a circuit breaker so an unavailable provider fails fast.
type CEPClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

func NewCEPClient(baseURL string, breaker *CircuitBreaker) *CEPClient {
	return &CEPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		breaker:    breaker,
	}
}

func (c *CEPClient) Breaker() *CircuitBreaker { return c.breaker }

// Lookup resolves cep (digits, punctuation ignored).
func (c *CEPClient) Lookup(ctx context.Context, cep string) (*Endereco, error) {
	digits := onlyDigits(cep)
	if len(digits) != 8 {
		return nil, ErrCEPInvalido
	}

	var out Endereco
	notFound := false
	err := c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", c.baseURL, digits), nil)
		if err != nil {
			return err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("cep: provider unreachable: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
			notFound = true
			return nil
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("cep: provider returned %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("cep: decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// ViaCEP answers 200 {"erro": true} (or "true") for unknown codes.
	if notFound || out.Erro != nil {
		return nil, ErrCEPNaoEncontrado
	}
	out.CEP = digits
	out.Erro = nil
	return &out, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
