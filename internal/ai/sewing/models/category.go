package models

// Category is one entry of the canned-answer catalog.
type Category struct {
	Name     string   // machine, technique, problem or fabric
	Keywords []string // lower-case substrings that select the category
	Answer   string
}
