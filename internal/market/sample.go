package market

// SampleData returns the compiled-in snapshot. Each call returns a fresh
// value.
func SampleData() *DashboardData {
	return &DashboardData{
		Catguette: TokenStats{
			Price:     0.00023,
			Volume:    156789,
			Holders:   2345,
			MarketCap: 890000,
			PriceHistory: []PricePoint{
				{Date: "2024-01-01", Price: 0.00020},
				{Date: "2024-01-02", Price: 0.00022},
				{Date: "2024-01-03", Price: 0.00023},
			},
			TopHolders: []Holder{
				{Address: "0x1234...5678", Amount: 50000},
				{Address: "0x8765...4321", Amount: 45000},
				{Address: "0x9876...5432", Amount: 40000},
			},
		},
		Doguette: TokenStats{
			Price:     0.00025,
			Volume:    167890,
			Holders:   2456,
			MarketCap: 920000,
			PriceHistory: []PricePoint{
				{Date: "2024-01-01", Price: 0.00021},
				{Date: "2024-01-02", Price: 0.00023},
				{Date: "2024-01-03", Price: 0.00025},
			},
			TopHolders: []Holder{
				{Address: "0xabcd...efgh", Amount: 52000},
				{Address: "0xijkl...mnop", Amount: 47000},
				{Address: "0xqrst...uvwx", Amount: 42000},
			},
		},
	}
}
