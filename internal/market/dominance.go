package market

// Dominance is each token's share of combined trading volume, in percent.
type Dominance struct {
	Catguette float64 `json:"catguette"`
	Doguette  float64 `json:"doguette"`
	// Defined is false when the combined volume is zero; both shares are
	// then reported as an even 50/50 split.
	Defined bool `json:"defined"`
}

// ComputeDominance splits combined volume between the two tokens.
func ComputeDominance(catVolume, dogVolume float64) Dominance {
	total := catVolume + dogVolume
	if total <= 0 {
		return Dominance{Catguette: 50, Doguette: 50}
	}
	return Dominance{
		Catguette: catVolume / total * 100,
		Doguette:  dogVolume / total * 100,
		Defined:   true,
	}
}

// Dominance computes the volume split for the snapshot.
func (d *DashboardData) Dominance() Dominance {
	return ComputeDominance(d.Catguette.Volume, d.Doguette.Volume)
}
