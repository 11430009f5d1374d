// Package catalog holds the fixed questionnaire schema: the nine interest
// categories, their graph labels, how many selections each accepts, and the
// reference data seeded into the store.
package catalog

import "fmt"

// Category identifies one of the nine questionnaire sections.
type Category string

const (
	Music              Category = "music"
	Entertainment      Category = "entertainment"
	Sports             Category = "sports"
	Hobbies            Category = "hobbies"
	RelationshipValues Category = "relationship_values"
	WeekendPreferences Category = "weekend_preferences"
	ConversationTypes  Category = "conversation_types"
	SocialStyle        Category = "social_style"
	RelationshipType   Category = "relationship_type"
)

// Cardinality says how many interests a category accepts per submission.
type Cardinality int

const (
	Single Cardinality = iota
	Multi
)

func (c Cardinality) String() string {
	if c == Multi {
		return "multi"
	}
	return "single"
}

// Definition describes a category's storage label and selection rules.
type Definition struct {
	Category    Category
	Label       string // Neo4j node label
	Cardinality Cardinality
	MaxChoices  int
}

var definitions = []Definition{
	{Music, "MusicGenre", Multi, 3},
	{Entertainment, "Entertainment", Multi, 3},
	{Sports, "Sport", Multi, 4},
	{Hobbies, "Hobby", Multi, 4},
	{RelationshipValues, "RelationshipValue", Single, 1},
	{WeekendPreferences, "WeekendPreference", Single, 1},
	{ConversationTypes, "ConversationType", Single, 1},
	{SocialStyle, "SocialStyle", Single, 1},
	{RelationshipType, "RelationshipType", Single, 1},
}

var byCategory = func() map[Category]Definition {
	m := make(map[Category]Definition, len(definitions))
	for _, d := range definitions {
		m[d.Category] = d
	}
	return m
}()

// All returns the category definitions in questionnaire order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition for a category.
func Lookup(c Category) (Definition, bool) {
	d, ok := byCategory[c]
	return d, ok
}

// Order returns the questionnaire position of c, or -1 for unknown categories.
func Order(c Category) int {
	for i, d := range definitions {
		if d.Category == c {
			return i
		}
	}
	return -1
}

// InterestID is the stable identifier of an interest node. Names are only
// unique within their category.
func InterestID(c Category, name string) string {
	return fmt.Sprintf("%s:%s", c, name)
}
