package voting

// Period describes the current voting round.
type Period struct {
	PoolAmount string `json:"poolAmount"`
	EndsAt     string `json:"endsAt"`
	Quarter    string `json:"quarter"`
}

// DefaultPeriod is the Q1 2025 round.
func DefaultPeriod() Period {
	return Period{
		PoolAmount: "156.8 MATIC",
		EndsAt:     "March 31, 2025",
		Quarter:    "Q1 2025",
	}
}
