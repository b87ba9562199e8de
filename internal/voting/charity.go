// Package voting holds the charity vote panel: the fixed charity list,
// tallies, and the wallet connection state behind the Vote buttons.
package voting

import "strconv"

// Charity is a vote beneficiary. Votes are static tallies.
type Charity struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Votes       int    `json:"votes"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

var charities = []Charity{
	{
		ID:          1,
		Name:        "Cat Shelter Foundation",
		Description: "Supporting homeless cats across the globe",
		Category:    "Animal Shelter",
		Votes:       2345,
	},
	{
		ID:          2,
		Name:        "Dog Rescue International",
		Description: "Providing care for abandoned dogs worldwide",
		Category:    "Animal Rescue",
		Votes:       1890,
	},
	{
		ID:          3,
		Name:        "Pet Food Bank",
		Description: "Ensuring no pet goes hungry during tough times",
		Category:    "Food Security",
		Votes:       2100,
	},
}

// Charities returns a copy of the charity list in display order.
func Charities() []Charity {
	return append([]Charity(nil), charities...)
}

// Lookup finds a charity by id.
func Lookup(id int) (Charity, bool) {
	for _, c := range charities {
		if c.ID == id {
			return c, true
		}
	}
	return Charity{}, false
}

// TotalVotes sums the tallies.
func TotalVotes(list []Charity) int {
	total := 0
	for _, c := range list {
		total += c.Votes
	}
	return total
}

// Percentage is votes as a share of total, in percent. A zero total
// yields 0 for every charity.
func Percentage(votes, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(votes) / float64(total) * 100
}

// FormatPercentage renders p with one decimal place.
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
