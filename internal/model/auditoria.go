package model

import (
	"time"

	"github.com/google/uuid"
)

// LogAuditoria is an append-only audit record.
type LogAuditoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Acao        string    `gorm:"not null;index"` // CREATE | UPDATE | DELETE
	Entidade    string    `gorm:"not null;index"`
	EntidadeID  string    `gorm:"index"`
	Mensagem    string    `gorm:"type:text"`
	UsuarioID   string
	UsuarioNome string
	CreatedAt   time.Time
}

func (LogAuditoria) TableName() string { return "logs_auditoria" }
