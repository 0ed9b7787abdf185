// Package actuarial holds the IRS life-expectancy tables used for required
// distributions and 72(t) schedules. Tables are built once at package
// initialization and are never mutated afterward.
package actuarial

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Table is an immutable mapping from integer age to a life-expectancy factor.
// The zero value is an empty table.
type Table struct {
	name    string
	factors map[int]decimal.Decimal
	minAge  int
	maxAge  int
}

func newTable(name string, firstAge int, values []float64) Table {
	factors := make(map[int]decimal.Decimal, len(values))
	for i, v := range values {
		factors[firstAge+i] = decimal.NewFromFloat(v)
	}
	return Table{name: name, factors: factors, minAge: firstAge, maxAge: firstAge + len(values) - 1}
}

// Name returns the table's published name
func (t Table) Name() string { return t.name }

// MinAge returns the youngest age in the table
func (t Table) MinAge() int { return t.minAge }

// MaxAge returns the oldest age in the table
func (t Table) MaxAge() int { return t.maxAge }

// Len returns the number of ages in the table
func (t Table) Len() int { return len(t.factors) }

// Covers reports whether the table has an entry for age
func (t Table) Covers(age int) bool {
	_, ok := t.factors[age]
	return ok
}

// Lookup returns the factor for age and whether it exists
func (t Table) Lookup(age int) (decimal.Decimal, bool) {
	f, ok := t.factors[age]
	return f, ok
}

// Factor returns the factor for age, clamping ages outside the table to its
// first or last entry. An empty table returns zero.
func (t Table) Factor(age int) decimal.Decimal {
	if len(t.factors) == 0 {
		return decimal.Zero
	}
	if age < t.minAge {
		age = t.minAge
	}
	if age > t.maxAge {
		age = t.maxAge
	}
	return t.factors[age]
}

// With returns a copy of the table with age set to factor. The receiver is unchanged.
func (t Table) With(age int, factor decimal.Decimal) Table {
	factors := make(map[int]decimal.Decimal, len(t.factors)+1)
	for a, f := range t.factors {
		factors[a] = f
	}
	factors[age] = factor

	out := Table{name: t.name, factors: factors, minAge: t.minAge, maxAge: t.maxAge}
	if len(t.factors) == 0 || age < out.minAge {
		out.minAge = age
	}
	if len(t.factors) == 0 || age > out.maxAge {
		out.maxAge = age
	}
	return out
}

// Ages returns the covered ages in ascending order
func (t Table) Ages() []int {
	ages := make([]int, 0, len(t.factors))
	for a := range t.factors {
		ages = append(ages, a)
	}
	sort.Ints(ages)
	return ages
}
