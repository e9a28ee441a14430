// ABOUTME: Read-only exercise catalog with lookups by id, muscle and equipment.
// ABOUTME: Lookups never fail; misses return nothing.
package catalog

import (
	"sort"
	"strings"

	"github.com/harperreed/elevate/internal/models"
)

// Catalog is an immutable set of exercise definitions.
type Catalog struct {
	exercises []models.Exercise
	byID      map[string]int
}

// New builds a catalog from the given exercises. Later duplicates of an ID
// are ignored.
func New(exercises []models.Exercise) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(exercises))}
	for _, e := range exercises {
		if _, dup := c.byID[e.ID]; dup {
			continue
		}
		c.byID[e.ID] = len(c.exercises)
		c.exercises = append(c.exercises, e.Clone())
	}
	return c
}

var defaultCatalog = New(seedExercises)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Get returns the exercise with the given ID.
func (c *Catalog) Get(id string) (*models.Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	e := c.exercises[i].Clone()
	return &e, true
}

// Name returns the exercise name for id, or id itself when unknown.
func (c *Catalog) Name(id string) string {
	if i, ok := c.byID[id]; ok {
		return c.exercises[i].Name
	}
	return id
}

// All returns every exercise in catalog order.
func (c *Catalog) All() []models.Exercise {
	return c.filter(func(models.Exercise) bool { return true })
}

// ByMuscle returns exercises working muscle as a primary or secondary mover.
func (c *Catalog) ByMuscle(muscle string) []models.Exercise {
	return c.filter(func(e models.Exercise) bool {
		return contains(e.PrimaryMuscles, muscle) || contains(e.SecondaryMuscles, muscle)
	})
}

// ByEquipment returns exercises that use the given equipment.
func (c *Catalog) ByEquipment(equipment string) []models.Exercise {
	return c.filter(func(e models.Exercise) bool {
		return contains(e.Equipment, equipment)
	})
}

// Search matches term case-insensitively against exercise names and primary
// muscles. An empty term matches everything.
func (c *Catalog) Search(term string) []models.Exercise {
	term = strings.ToLower(strings.TrimSpace(term))
	return c.filter(func(e models.Exercise) bool {
		if strings.Contains(strings.ToLower(e.Name), term) {
			return true
		}
		for _, m := range e.PrimaryMuscles {
			if strings.Contains(strings.ToLower(m), term) {
				return true
			}
		}
		return false
	})
}

// Muscles returns every primary and secondary muscle, deduplicated and sorted.
func (c *Catalog) Muscles() []string {
	seen := make(map[string]struct{})
	for _, e := range c.exercises {
		for _, m := range e.PrimaryMuscles {
			seen[m] = struct{}{}
		}
		for _, m := range e.SecondaryMuscles {
			seen[m] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Equipment returns every equipment tag, deduplicated and sorted.
func (c *Catalog) Equipment() []string {
	seen := make(map[string]struct{})
	for _, e := range c.exercises {
		for _, item := range e.Equipment {
			seen[item] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func (c *Catalog) filter(keep func(models.Exercise) bool) []models.Exercise {
	var out []models.Exercise
	for _, e := range c.exercises {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
