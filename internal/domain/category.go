package domain

// Pair is a word and its definition, stored as a two-element JSON array
type Pair [2]string

// Word returns the first element of the pair
func (p Pair) Word() string {
	return p[0]
}

// Definition returns the second element of the pair
func (p Pair) Definition() string {
	return p[1]
}

// Category represents a titled set of word-definition pairs
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Pairs []Pair `json:"pairs"`
}

// CategorySummary is the list projection of a category, without its pairs
type CategorySummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Length int    `json:"length"`
}

// Summary projects the category for list responses
func (c Category) Summary() CategorySummary {
	return CategorySummary{
		ID:     c.ID,
		Title:  c.Title,
		Length: len(c.Pairs),
	}
}
