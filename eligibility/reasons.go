/*
reasons.go - Circumstantial leave reason categories

PURPOSE:
  Maps the free-text reason of a circumstantial leave request to a closed
  ReasonCategory carrying the per-category day cap and documentation
  requirement. The portal accepts reasons in Polish and English, so the
  lookup table holds synonyms in both languages.

RULES:
  - Lookup is case-insensitive and whitespace-trimmed
  - Unmapped reasons fall back to a generic 2-day category with no
    documentation requirement
  - No category grants more than 2 days (statutory short-leave cap)
*/
package eligibility

import "strings"

// =============================================================================
// REASON CATEGORY
// =============================================================================

// ReasonCategory is a qualifying life event for circumstantial leave.
type ReasonCategory struct {
	Name                  string
	MaxDays               int
	DocumentationRequired bool
}

// CircumstantialMaxDays is the hard cap for any circumstantial reason.
const CircumstantialMaxDays = 2

var (
	categoryWedding = ReasonCategory{Name: "wedding", MaxDays: 2, DocumentationRequired: true}
	categoryBirth   = ReasonCategory{Name: "birth", MaxDays: 2, DocumentationRequired: true}
	categoryDeath   = ReasonCategory{Name: "death_in_family", MaxDays: 2, DocumentationRequired: true}
	categoryMoving  = ReasonCategory{Name: "moving", MaxDays: 1, DocumentationRequired: false}

	// categoryGeneric is the fallback for reasons outside the closed set.
	categoryGeneric = ReasonCategory{Name: "other", MaxDays: 2, DocumentationRequired: false}
)

// reasonLookup maps Polish and English synonyms to their category.
var reasonLookup = map[string]ReasonCategory{
	// wedding
	"ślub":     categoryWedding,
	"slub":     categoryWedding,
	"wesele":   categoryWedding,
	"wedding":  categoryWedding,
	"marriage": categoryWedding,

	// birth of a child
	"narodziny":          categoryBirth,
	"narodziny dziecka":  categoryBirth,
	"urodzenie dziecka":  categoryBirth,
	"birth":              categoryBirth,
	"birth of a child":   categoryBirth,
	"childbirth":         categoryBirth,

	// death in the family
	"śmierć":          categoryDeath,
	"smierc":          categoryDeath,
	"pogrzeb":         categoryDeath,
	"death":           categoryDeath,
	"death in family": categoryDeath,
	"funeral":         categoryDeath,

	// moving
	"przeprowadzka": categoryMoving,
	"moving":        categoryMoving,
	"relocation":    categoryMoving,
}

// MapReason resolves a free-text reason to its category. Unknown reasons
// get the generic category.
func MapReason(reason string) ReasonCategory {
	key := strings.ToLower(strings.TrimSpace(reason))
	if cat, ok := reasonLookup[key]; ok {
		return cat
	}
	return categoryGeneric
}
