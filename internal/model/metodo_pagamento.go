package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MetodoPagamento is one configurable payment method. Config holds the card
// rate tables as jsonb; Variacoes the selectable sub-options (e.g. Pix keys).
type MetodoPagamento struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string         `gorm:"uniqueIndex;not null"`
	Tipo      string         `gorm:"not null"` // dinheiro | pix | cartao | crediario | troca | outro
	Ativo     bool           `gorm:"not null;default:true"`
	Ordem     int            `gorm:"not null;default:0"`
	Config    datatypes.JSON `gorm:"type:jsonb"`
	Variacoes datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MetodoPagamento) TableName() string { return "metodos_pagamento" }

// TermoGarantia is a named warranty text printed on receipts.
type TermoGarantia struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Conteudo  string    `gorm:"type:text;not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TermoGarantia) TableName() string { return "termos_garantia" }
