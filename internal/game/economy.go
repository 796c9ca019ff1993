package game

// Economy is one faction's resource counters. They only ever grow through
// per-tick accrual and only ever shrink through recruitment debits, so they
// can never go negative: an unaffordable recruit is rejected outright.
type Economy struct {
	Political float64
	Manpower  float64
	Equipment float64
}

// Accrue applies one tick of income.
func (e *Economy) Accrue(political, manpower, equipment float64) {
	e.Political += political
	e.Manpower += manpower
	e.Equipment += equipment
}

// CanAfford checks a recruit's manpower and equipment price.
func (e *Economy) CanAfford(manpower, equipment float64) bool {
	return e.Manpower >= manpower && e.Equipment >= equipment
}

// Debit spends a recruit's price. Callers must have checked CanAfford; the
// pair keeps a failed recruit a strict no-op on the counters.
func (e *Economy) Debit(manpower, equipment float64) {
	e.Manpower -= manpower
	e.Equipment -= equipment
}
