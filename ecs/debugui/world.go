package debugui

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/plus3/glyphwalk/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID          ecs.EntityId
	ArchetypeID uint32
	Components  []string
}

// ArchetypeInfo is one row of the archetype viewer.
type ArchetypeInfo struct {
	ID         uint32
	Components []string
	Entities   int
}

// Entity browser columns.
const (
	EntityColumnID = iota
	EntityColumnArchetype
	EntityColumnComponents
	EntityColumnCount
)

// Archetype viewer columns.
const (
	ArchetypeColumnID = iota
	ArchetypeColumnComponents
	ArchetypeColumnCount
	ArchetypeColumnEntities
)

func typeNames(types []reflect.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

// CollectEntities lists every entity in storage, archetype by archetype.
func CollectEntities(storage *ecs.Storage) []EntityInfo {
	entities := make([]EntityInfo, 0, storage.EntityCount())
	for archetype := range storage.Archetypes() {
		names := typeNames(archetype.Types())
		for id := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:          id,
				ArchetypeID: archetype.ID(),
				Components:  names,
			})
		}
	}
	return entities
}

// FilterEntities keeps the entities whose id, archetype id or component
// names contain text, ignoring case. A non-nil archetype narrows the result
// to that archetype.
func FilterEntities(entities []EntityInfo, text string, archetype *uint32) []EntityInfo {
	if text == "" && archetype == nil {
		return entities
	}

	text = strings.ToLower(text)
	var filtered []EntityInfo
	for _, e := range entities {
		if archetype != nil && e.ArchetypeID != *archetype {
			continue
		}
		if text != "" &&
			!strings.Contains(strconv.FormatUint(uint64(e.ID), 10), text) &&
			!strings.Contains(strconv.FormatUint(uint64(e.ArchetypeID), 16), text) &&
			!strings.Contains(strings.ToLower(strings.Join(e.Components, " ")), text) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// SortEntities orders entities by one of the table columns. Ties keep
// entity id order.
func SortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case EntityColumnArchetype:
			c = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case EntityColumnComponents:
			c = slices.Compare(a.Components, b.Components)
		case EntityColumnCount:
			c = cmp.Compare(len(a.Components), len(b.Components))
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// CollectArchetypes lists the archetypes of storage in creation order.
func CollectArchetypes(storage *ecs.Storage) []ArchetypeInfo {
	var archetypes []ArchetypeInfo
	for archetype := range storage.Archetypes() {
		archetypes = append(archetypes, ArchetypeInfo{
			ID:         archetype.ID(),
			Components: typeNames(archetype.Types()),
			Entities:   archetype.Len(),
		})
	}
	return archetypes
}

// SortArchetypes orders archetypes by one of the table columns.
func SortArchetypes(archetypes []ArchetypeInfo, column int, ascending bool) {
	slices.SortStableFunc(archetypes, func(a, b ArchetypeInfo) int {
		var c int
		switch column {
		case ArchetypeColumnComponents:
			c = slices.Compare(a.Components, b.Components)
		case ArchetypeColumnCount:
			c = cmp.Compare(len(a.Components), len(b.Components))
		case ArchetypeColumnEntities:
			c = cmp.Compare(a.Entities, b.Entities)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// ComponentNames returns the sorted names of every component type that some
// archetype in storage holds.
func ComponentNames(storage *ecs.Storage) []string {
	var names []string
	for archetype := range storage.Archetypes() {
		for _, t := range archetype.Types() {
			if !slices.Contains(names, t.String()) {
				names = append(names, t.String())
			}
		}
	}
	slices.Sort(names)
	return names
}

// MatchingArchetypes returns the archetypes a query over the named component
// types would visit.
func MatchingArchetypes(storage *ecs.Storage, required []string) []ArchetypeInfo {
	var matching []ArchetypeInfo
	for _, info := range CollectArchetypes(storage) {
		if containsAll(info.Components, required) {
			matching = append(matching, info)
		}
	}
	return matching
}

func containsAll(have, want []string) bool {
	for _, name := range want {
		if !slices.Contains(have, name) {
			return false
		}
	}
	return true
}

// FieldInfo describes an exported struct field the inspector can show.
type FieldInfo struct {
	Name  string
	Index int
	Type  reflect.Type
}

var fieldCache sync.Map

// Fields returns the exported fields of a struct type. Results are cached
// per type.
func Fields(t reflect.Type) []FieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]FieldInfo)
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: f.Name, Index: i, Type: f.Type})
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]FieldInfo)
}

// ComponentValue returns the settable value of one component of an entity.
// The result is invalid when the entity does not have that component.
func ComponentValue(storage *ecs.Storage, id ecs.EntityId, compType reflect.Type) reflect.Value {
	component := storage.GetComponent(id, compType)
	if component == nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(component).Elem()
}

// SetField stores input into field, converting between numeric kinds.
// It reports whether the value was stored.
func SetField(field reflect.Value, input any) bool {
	if !field.IsValid() || !field.CanSet() {
		return false
	}
	v := reflect.ValueOf(input)
	if !v.IsValid() || !v.Type().ConvertibleTo(field.Type()) {
		return false
	}
	// Converting an integer to a string yields a rune, never what an edit meant.
	if (field.Kind() == reflect.String) != (v.Kind() == reflect.String) {
		return false
	}
	if v.CanInt() && v.Int() < 0 && field.CanUint() {
		return false
	}
	field.Set(v.Convert(field.Type()))
	return true
}
