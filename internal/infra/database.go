package infra

import (
	"fmt"

	"istorepro/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection, migrates every table and applies the
// idempotent SQL patches AutoMigrate cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Integration tests call it on
// a fresh container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Fornecedor{},
		&model.ContatoFornecedor{},
		&model.Produto{},
		&model.Cliente{},
		&model.PedidoCompra{},
		&model.ItemPedidoCompra{},
		&model.ReservaVenda{},
		&model.Venda{},
		&model.VendaItem{},
		&model.Pagamento{},
		&model.ParcelaCrediario{},
		&model.MovimentoEstoque{},
		&model.MetodoPagamento{},
		&model.TermoGarantia{},
		&model.LogAuditoria{},
		&model.Recibo{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs DDL that must survive re-runs: the sale number
// sequence, check constraints and partial indexes.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"sale number sequence", `CREATE SEQUENCE IF NOT EXISTS vendas_numero_seq START 1`},
		{"non-negative stock", `DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_produtos_estoque') THEN
		    ALTER TABLE produtos ADD CONSTRAINT chk_produtos_estoque CHECK (estoque >= 0);
		  END IF;
		END $$`},
		{"unique units hold at most one", `DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_produtos_serializado') THEN
		    ALTER TABLE produtos ADD CONSTRAINT chk_produtos_serializado
		      CHECK (estoque <= 1 OR (COALESCE(imei1, '') = '' AND COALESCE(imei2, '') = '' AND COALESCE(numero_serie, '') = ''));
		  END IF;
		END $$`},
		{"active reservations index", `CREATE INDEX IF NOT EXISTS idx_reservas_venda_ativas
		    ON reservas_venda (expires_at) WHERE status = 'ativa'`},
		{"open installments index", `CREATE INDEX IF NOT EXISTS idx_parcelas_abertas
		    ON parcelas_crediario (vencimento) WHERE status = 'aberta'`},
		{"receipt retry index", `CREATE INDEX IF NOT EXISTS idx_recibos_pending_retry
		    ON recibos (next_retry_at) WHERE estado = 'erro' AND next_retry_at IS NOT NULL`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
