package domain

// Policy is one civic policy excerpt from the corpus file. The corpus is
// loaded once at startup and immutable for the process lifetime.
type Policy struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Source string `json:"source"`
}
