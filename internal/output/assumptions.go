package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Optimistic and pessimistic scenarios: expected return +/- 2 percentage points",
	"Accumulation: each account grows, then receives its annual contribution (match goes to pre-tax)",
	"Retirement: first-year withdrawal = balance at retirement x safe withdrawal rate, raised by inflation each year",
	"Required distributions: IRS Uniform Lifetime Table, taken from pre-tax first; excess is reinvested in taxable",
	"Monte Carlo: normally distributed annual returns floored at -100%",
}
