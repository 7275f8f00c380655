// Command seed loads the default payment methods and warranty terms.
// Existing rows with the same name are left untouched.
package main

import (
	"encoding/json"
	"os"

	"istorepro/internal/config"
	"istorepro/internal/infra"
	"istorepro/internal/model"
	"istorepro/internal/payment"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func rates(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func jsonOf(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatal().Err(err).Msg("encode seed value")
	}
	return datatypes.JSON(b)
}

func metodosPadrao() []model.MetodoPagamento {
	cartao := payment.RateConfig{
		DebitRate:               decimal.RequireFromString("1.39"),
		CreditNoInterestRates:   rates("3.15", "5.39", "6.12", "6.85", "7.57", "8.28", "8.99", "9.69", "10.38", "11.06", "11.74", "12.40"),
		CreditWithInterestRates: rates("3.15", "4.99", "5.69", "6.39", "7.09", "7.79", "8.49", "9.19", "9.89", "10.59", "11.29", "11.99"),
	}
	return []model.MetodoPagamento{
		{Nome: "Dinheiro", Tipo: "dinheiro", Ordem: 1},
		{Nome: "Pix", Tipo: "pix", Ordem: 2, Variacoes: jsonOf([]string{"CNPJ", "Celular", "E-mail"})},
		{Nome: "Cartão de Débito", Tipo: "cartao", Ordem: 3, Config: jsonOf(cartao)},
		{Nome: "Cartão de Crédito", Tipo: "cartao", Ordem: 4, Config: jsonOf(cartao)},
		{Nome: "Crediário", Tipo: "crediario", Ordem: 5},
		{Nome: "Aparelho na Troca", Tipo: "troca", Ordem: 6},
	}
}

func termosPadrao() []model.TermoGarantia {
	return []model.TermoGarantia{
		{Nome: "Garantia 90 dias", Conteudo: "Garantia legal de 90 dias contra defeitos de funcionamento, " +
			"mediante apresentação deste recibo. Não cobre quedas, oxidação ou violação do aparelho."},
		{Nome: "Garantia 1 ano Apple", Conteudo: "Aparelho novo lacrado com garantia de 1 ano pela Apple, " +
			"acionada em qualquer assistência técnica autorizada."},
		{Nome: "Sem garantia", Conteudo: "Produto vendido no estado em que se encontra, sem garantia."},
	}
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range metodosPadrao() {
			m.Ativo = true
			if err := tx.Where(model.MetodoPagamento{Nome: m.Nome}).FirstOrCreate(&m).Error; err != nil {
				return err
			}
		}
		for _, t := range termosPadrao() {
			t.Ativo = true
			if err := tx.Where(model.TermoGarantia{Nome: t.Nome}).FirstOrCreate(&t).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := seed(db); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("payment methods and warranty terms seeded")
}
