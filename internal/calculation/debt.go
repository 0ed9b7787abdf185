package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInsufficientPayment is returned when a budget cannot retire the debts:
// either it is below the sum of minimum payments or payoff never converges.
var ErrInsufficientPayment = errors.New("insufficient payment")

// maxPayoffMonths bounds the payoff simulation (100 years)
const maxPayoffMonths = 1200

type debtState struct {
	debt        domain.Debt
	monthlyRate decimal.Decimal
	balance     decimal.Decimal
	interest    decimal.Decimal
	paid        decimal.Decimal
	payoffMonth int
}

func (ds *debtState) key() string {
	if ds.debt.ID != "" {
		return ds.debt.ID
	}
	return ds.debt.Name
}

func (ds *debtState) pay(amount decimal.Decimal) {
	ds.balance = ds.balance.Sub(amount)
	ds.paid = ds.paid.Add(amount)
}

// PlanDebtPayoff simulates month-by-month payoff of debts under a fixed monthly budget.
//
// Each month every open debt accrues a month of interest and receives its minimum
// payment; whatever budget remains goes to the highest-priority open debt, spilling
// to the next once that one is retired. Avalanche prioritizes by descending rate,
// snowball by ascending starting balance; ties keep input order. Unknown strategies
// are treated as avalanche. The input slice is not modified.
func PlanDebtPayoff(debts []domain.Debt, monthlyBudget decimal.Decimal, strategy domain.PayoffStrategy) (*domain.DebtPayoffResult, error) {
	if strategy != domain.Snowball {
		strategy = domain.Avalanche
	}

	states := make([]*debtState, len(debts))
	minimumTotal := decimal.Zero
	for i, d := range debts {
		states[i] = &debtState{
			debt:        d,
			monthlyRate: d.InterestRate.Div(twelve),
			balance:     d.Balance,
		}
		if d.Balance.GreaterThan(decimal.Zero) {
			minimumTotal = minimumTotal.Add(d.MinimumPayment)
		}
	}
	if monthlyBudget.LessThan(minimumTotal) {
		return nil, fmt.Errorf("%w: budget %s is below minimum payments %s",
			ErrInsufficientPayment, monthlyBudget.StringFixed(2), minimumTotal.StringFixed(2))
	}

	order := prioritize(states, strategy)
	result := &domain.DebtPayoffResult{Strategy: strategy}

	month := 0
	for ; month < maxPayoffMonths && hasOpenBalance(states); month++ {
		current := month + 1

		for _, s := range states {
			if s.balance.LessThanOrEqual(decimal.Zero) {
				continue
			}
			interest := s.balance.Mul(s.monthlyRate).Round(centPlaces)
			s.balance = s.balance.Add(interest)
			s.interest = s.interest.Add(interest)
		}

		remaining := monthlyBudget
		for _, s := range order {
			if s.balance.LessThanOrEqual(decimal.Zero) {
				continue
			}
			payment := decimal.Min(s.debt.MinimumPayment, s.balance, remaining)
			s.pay(payment)
			remaining = remaining.Sub(payment)
		}

		// waterfall: freed minimums and surplus go to the top open priority
		for _, s := range order {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			if s.balance.LessThanOrEqual(decimal.Zero) {
				continue
			}
			payment := decimal.Min(remaining, s.balance)
			s.pay(payment)
			remaining = remaining.Sub(payment)
		}

		for _, s := range order {
			if s.payoffMonth == 0 && s.debt.Balance.GreaterThan(decimal.Zero) && s.balance.LessThanOrEqual(decimal.Zero) {
				s.payoffMonth = current
				result.PayoffOrder = append(result.PayoffOrder, s.key())
			}
		}
	}

	if hasOpenBalance(states) {
		return nil, fmt.Errorf("%w: debts not retired within %d months", ErrInsufficientPayment, maxPayoffMonths)
	}

	result.Months = month
	result.Debts = make([]domain.DebtPayoff, len(states))
	for i, s := range states {
		result.Debts[i] = domain.DebtPayoff{
			DebtID:        s.debt.ID,
			Name:          s.debt.Name,
			PayoffMonth:   s.payoffMonth,
			TotalInterest: s.interest,
			TotalPaid:     s.paid,
		}
		result.TotalInterest = result.TotalInterest.Add(s.interest)
		result.TotalPaid = result.TotalPaid.Add(s.paid)
	}
	return result, nil
}

// CompareDebtStrategies runs avalanche and snowball over the same debts and budget
func CompareDebtStrategies(debts []domain.Debt, monthlyBudget decimal.Decimal) (*domain.StrategyComparison, error) {
	avalanche, err := PlanDebtPayoff(debts, monthlyBudget, domain.Avalanche)
	if err != nil {
		return nil, fmt.Errorf("avalanche plan: %w", err)
	}
	snowball, err := PlanDebtPayoff(debts, monthlyBudget, domain.Snowball)
	if err != nil {
		return nil, fmt.Errorf("snowball plan: %w", err)
	}
	return &domain.StrategyComparison{
		Avalanche:     avalanche,
		Snowball:      snowball,
		InterestSaved: snowball.TotalInterest.Sub(avalanche.TotalInterest),
		MonthsSaved:   snowball.Months - avalanche.Months,
	}, nil
}

func prioritize(states []*debtState, strategy domain.PayoffStrategy) []*debtState {
	order := make([]*debtState, len(states))
	copy(order, states)
	switch strategy {
	case domain.Snowball:
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].debt.Balance.LessThan(order[j].debt.Balance)
		})
	default:
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].debt.InterestRate.GreaterThan(order[j].debt.InterestRate)
		})
	}
	return order
}

func hasOpenBalance(states []*debtState) bool {
	for _, s := range states {
		if s.balance.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}
