package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"soulmate/backend/internal/catalog"
	apperrors "soulmate/backend/pkg/errors"
)

// User represents a member profile node
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Age             int       `json:"age"`
	Description     string    `json:"description"`
	ProfileComplete bool      `json:"profile_complete"`
	ShowPhoto       bool      `json:"show_photo"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublicProfile is the subset of a user shown to other members
type PublicProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Description string `json:"description"`
	ShowPhoto   bool   `json:"show_photo"`
}

// Public strips private fields from the user.
func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Name:        u.Name,
		Age:         u.Age,
		Description: u.Description,
		ShowPhoto:   u.ShowPhoto,
	}
}

// Interest is a reference-data node within one category
type Interest struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category catalog.Category `json:"category"`
}

// Like is a User -> Interest LIKES edge
type Like struct {
	Interest  Interest `json:"interest"`
	Intensity float64  `json:"intensity"`
}

// Candidate is another user together with their full liked-interest set
type Candidate struct {
	User      User
	Interests []Interest
}

// Recommendation is one ranked result from the recommender
type Recommendation struct {
	User            PublicProfile `json:"user"`
	SharedInterests int           `json:"shared_interests"`
	CommonInterests []string      `json:"common_interests"`
	Score           float64       `json:"score"`
	MatchPercentage int           `json:"match_percentage"`
}

// MatchProfile is a confirmed mutual match as listed to the subject
type MatchProfile = PublicProfile

// LikeResult reports the outcome of a like action
type LikeResult struct {
	IsMatch bool `json:"is_match"`
}

// Registration holds the fields needed to create a user
type Registration struct {
	Name        string
	Email       string
	Age         int
	Description string
}

// Selection is the ordered list of interest names chosen in one category.
// Single-choice categories carry exactly one name.
type Selection []string

// Answers maps each answered category to its selection
type Answers map[catalog.Category]Selection

// Validate checks the answers against the per-category schema.
func (a Answers) Validate() error {
	if len(a) == 0 {
		return apperrors.NewValidation("answers", "at least one category must be answered")
	}
	for category, sel := range a {
		def, ok := catalog.Lookup(category)
		if !ok {
			return apperrors.NewValidation("answers", fmt.Sprintf("unknown category %q", category))
		}
		if len(sel) == 0 {
			return apperrors.NewValidation(string(category), "no selection")
		}
		if def.Cardinality == catalog.Single && len(sel) > 1 {
			return apperrors.NewValidation(string(category), "only one selection allowed")
		}
		if len(sel) > def.MaxChoices {
			return apperrors.NewValidation(string(category), fmt.Sprintf("at most %d selections allowed", def.MaxChoices))
		}
		seen := make(map[string]struct{}, len(sel))
		for _, name := range sel {
			if strings.TrimSpace(name) == "" {
				return apperrors.NewValidation(string(category), "empty interest name")
			}
			if _, dup := seen[name]; dup {
				return apperrors.NewValidation(string(category), fmt.Sprintf("duplicate selection %q", name))
			}
			seen[name] = struct{}{}
		}
	}
	return nil
}

// Refs flattens the answers in questionnaire order, keeping selection order
// within each category.
func (a Answers) Refs() []catalog.Ref {
	categories := make([]catalog.Category, 0, len(a))
	for c := range a {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return catalog.Order(categories[i]) < catalog.Order(categories[j])
	})

	var refs []catalog.Ref
	for _, c := range categories {
		for _, name := range a[c] {
			refs = append(refs, catalog.Ref{Category: c, Name: name})
		}
	}
	return refs
}

// GroupLikes arranges liked interests by category, keeping their order.
func GroupLikes(likes []Like) Answers {
	out := make(Answers)
	for _, l := range likes {
		out[l.Interest.Category] = append(out[l.Interest.Category], l.Interest.Name)
	}
	return out
}

// Validate checks a registration before it is stored.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.NewValidation("name", "cannot be empty")
	}
	if !strings.Contains(r.Email, "@") {
		return apperrors.NewValidation("email", "must be an email address")
	}
	if r.Age < 18 {
		return apperrors.NewValidation("age", "must be at least 18")
	}
	return nil
}

// SortInterests orders interests by questionnaire category, then name.
func SortInterests(interests []Interest) {
	sort.SliceStable(interests, func(i, j int) bool {
		oi, oj := catalog.Order(interests[i].Category), catalog.Order(interests[j].Category)
		if oi != oj {
			return oi < oj
		}
		return interests[i].Name < interests[j].Name
	})
}

// SortLikes orders likes the same way as SortInterests.
func SortLikes(likes []Like) {
	sort.SliceStable(likes, func(i, j int) bool {
		oi, oj := catalog.Order(likes[i].Interest.Category), catalog.Order(likes[j].Interest.Category)
		if oi != oj {
			return oi < oj
		}
		return likes[i].Interest.Name < likes[j].Interest.Name
	})
}
