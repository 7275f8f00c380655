package model

import (
	"time"

	"github.com/google/uuid"
)

// Status de Recibo.
const (
	ReciboPendente = "pendente"
	ReciboGerado   = "gerado"
	ReciboErro     = "erro"
)

// Recibo tracks the PDF receipt of a sale. The receipt worker renders it
// and retries failed renders through the retry cron.
type Recibo struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID      string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Estado       string    `gorm:"type:varchar(20);not null;default:'pendente'"`
	PDFPath      *string   `gorm:"column:pdf_path"`
	EmailDestino *string
	EmailEnviado bool `gorm:"not null;default:false"`
	RetryCount   int  `gorm:"not null;default:0"`
	NextRetryAt  *time.Time
	LastError    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Recibo) TableName() string { return "recibos" }
