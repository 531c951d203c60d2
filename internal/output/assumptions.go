package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Growth compounds on a 365-day year: (1 + yield)^(days/365)",
	"Asset-based fees accrue daily on the sub-account balance",
	"Partial calendar periods prorate payments, bonuses and fixed costs by months",
	"Main account withholding: 28% up to 5 years, 14% up to 10 years, then tax free",
	"Eseti account withholding per contribution lot: 28% up to 3 years, 14% up to 5 years, then tax free",
	"Corporate holders: 15% and 7.5% in the same brackets",
}
