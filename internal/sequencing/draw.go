package sequencing

import "github.com/shopspring/decimal"

// drawInOrder satisfies pending RMDs first, then sources the remaining need from
// the named sources in order. Sources missing from order are never touched.
func drawInOrder(strategyName string, order []string, sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	plan := WithdrawalPlan{
		Requested:    ctx.NeedAmount,
		StrategyUsed: strategyName,
		Allocations:  []WithdrawalAllocation{},
		RMDSatisfied: true,
	}

	available := make(map[string]decimal.Decimal, len(sources))
	lookup := make(map[string]*WithdrawalSource, len(sources))
	for i := range sources {
		lookup[sources[i].Name] = &sources[i]
		available[sources[i].Name] = sources[i].Balance
	}

	allocs := make(map[string]*WithdrawalAllocation)
	record := func(src *WithdrawalSource, amount decimal.Decimal, rmd bool) {
		if amount.LessThanOrEqual(decimal.Zero) {
			return
		}
		alloc, ok := allocs[src.Name]
		if !ok {
			plan.Allocations = append(plan.Allocations, WithdrawalAllocation{Source: src.Name, TaxTreatment: src.TaxTreatment})
			alloc = &plan.Allocations[len(plan.Allocations)-1]
			allocs[src.Name] = alloc
		}
		alloc.Gross = alloc.Gross.Add(amount)
		if rmd {
			alloc.RMDPortion = alloc.RMDPortion.Add(amount)
		}
		available[src.Name] = available[src.Name].Sub(amount)
		plan.TotalSourced = plan.TotalSourced.Add(amount)
		switch src.Name {
		case SourceTraditional:
			plan.TraditionalUsed = plan.TraditionalUsed.Add(amount)
		case SourceRoth:
			plan.RothUsed = plan.RothUsed.Add(amount)
		case SourceTaxable:
			plan.TaxableUsed = plan.TaxableUsed.Add(amount)
		}
	}

	// RMDs come out regardless of strategy
	rmdTaken := decimal.Zero
	if ctx.IsRMDYear {
		for i := range sources {
			src := &sources[i]
			if !src.RMDRequired || src.PendingRMD.LessThanOrEqual(decimal.Zero) {
				continue
			}
			take := decimal.Min(src.PendingRMD, available[src.Name])
			if take.LessThan(src.PendingRMD) {
				plan.RMDSatisfied = false
			}
			record(src, take, true)
			rmdTaken = rmdTaken.Add(take)
		}
	}

	remaining := ctx.NeedAmount.Sub(rmdTaken)
	if remaining.LessThan(decimal.Zero) {
		plan.ExcessRMD = remaining.Neg()
		remaining = decimal.Zero
	}

	for _, name := range order {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		src, ok := lookup[name]
		if !ok || available[name].LessThanOrEqual(decimal.Zero) {
			continue
		}
		take := decimal.Min(available[name], remaining)
		record(src, take, false)
		remaining = remaining.Sub(take)
	}

	plan.RemainingNeed = remaining
	if remaining.GreaterThan(decimal.Zero) {
		plan.Notes = append(plan.Notes, "insufficient balances to meet request")
	}
	if !plan.RMDSatisfied {
		plan.Notes = append(plan.Notes, "required distribution exceeds available balance")
	}
	return plan
}
