package valueobject

import (
	"fmt"
	"math"

	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

// MaxAmount соответствует NUMERIC(10,2) в схеме.
const MaxAmount = 99999999.99

// Money хранит денежную сумму с точностью до копеек.
type Money struct {
	Amount float64
}

func NewMoney(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "некорректная сумма")
	}
	if amount < 0 {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "сумма не может быть отрицательной")
	}
	if amount > MaxAmount {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "сумма слишком велика")
	}
	return Money{Amount: math.Round(amount*100) / 100}, nil
}

// NewOptionalMoney возвращает nil для пустого бюджета.
func NewOptionalMoney(amount *float64) (*Money, error) {
	if amount == nil {
		return nil, nil
	}
	m, err := NewMoney(*amount)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (m Money) Less(other Money) bool {
	return m.Amount < other.Amount
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Amount)
}
