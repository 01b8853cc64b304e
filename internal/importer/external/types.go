package external

// Question is the provider-neutral shape every client returns.
// Category and Difficulty are the provider's own labels.
type Question struct {
	Category   string
	Difficulty string
	Question   string
	Answer     string
}
