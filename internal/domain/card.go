package domain

// Card is a front/back text pair. The front side is unique across the store.
type Card struct {
	ID    string
	Front string
	Back  string
}
