package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa un asiento del libro de facturas, propiedad de exactamente una empresa.
type Invoice struct {
	ID       int64
	CompCode string
	Amt      decimal.Decimal
	Paid     bool
	AddDate  time.Time  // solo fecha
	PaidDate *time.Time // nil hasta que se paga
}
