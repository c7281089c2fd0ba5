package service

const (
	MaxLoanAmount    = 1_000_000_000.0 // 100 crore
	MaxInterestRate  = 10.0            // 1000% anual, como fracción
	MaxTermMonths    = 600             // 50 años
	MinTermMonths    = 1
	MaxHorizonMonths = 600
	MaxMonthlyBudget = 100_000_000.0

	// Tabla de plazos por estrategia
	baseTenureMonths       = 60
	minAggressiveEMIMonths = 24
	maxAggressiveSIPMonths = 84
	aggressiveEMIRatio     = 0.6
	aggressiveSIPRatio     = 1.4
)
