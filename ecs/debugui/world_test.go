package debugui_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/glyphwalk/ecs"
	"github.com/plus3/glyphwalk/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Point struct {
	X, Y int32
}

type Body struct {
	Point
	Mass   float32
	Name   string
	Solid  bool
	Count  uint8
	hidden int
}

type Marker struct{}

func newWorld(t *testing.T) (*ecs.Storage, []ecs.EntityId) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Point](registry)
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Marker](registry)
	storage := ecs.NewStorage(registry)

	ids := []ecs.EntityId{
		storage.Spawn(Point{X: 1}),
		storage.Spawn(Point{X: 2}),
		storage.Spawn(Point{X: 3}, Marker{}),
		storage.Spawn(Body{Name: "crate"}, Marker{}),
	}
	return storage, ids
}

func TestCollectEntities(t *testing.T) {
	storage, ids := newWorld(t)

	entities := debugui.CollectEntities(storage)
	require.Len(t, entities, 4)

	got := make([]ecs.EntityId, len(entities))
	for i, e := range entities {
		got[i] = e.ID
		assert.Equal(t, e.ID.ArchetypeId(), e.ArchetypeID)
	}
	assert.ElementsMatch(t, ids, got)
	assert.Equal(t, []string{"debugui_test.Point"}, entities[0].Components)
}

func TestFilterEntities(t *testing.T) {
	storage, ids := newWorld(t)
	entities := debugui.CollectEntities(storage)

	assert.Len(t, debugui.FilterEntities(entities, "", nil), 4)
	assert.Len(t, debugui.FilterEntities(entities, "marker", nil), 2, "component names match ignoring case")
	assert.Empty(t, debugui.FilterEntities(entities, "nothing", nil))

	archetype := ids[0].ArchetypeId()
	only := debugui.FilterEntities(entities, "", &archetype)
	require.Len(t, only, 2)
	for _, e := range only {
		assert.Equal(t, archetype, e.ArchetypeID)
	}

	assert.Empty(t, debugui.FilterEntities(entities, "body", &archetype), "both filters apply")
}

func TestSortEntities(t *testing.T) {
	storage, _ := newWorld(t)
	entities := debugui.CollectEntities(storage)

	debugui.SortEntities(entities, debugui.EntityColumnCount, false)
	assert.Len(t, entities[0].Components, 2)
	assert.Len(t, entities[3].Components, 1)

	debugui.SortEntities(entities, debugui.EntityColumnID, true)
	for i := 1; i < len(entities); i++ {
		assert.Less(t, entities[i-1].ID, entities[i].ID)
	}
}

func TestCollectArchetypes(t *testing.T) {
	storage, ids := newWorld(t)

	archetypes := debugui.CollectArchetypes(storage)
	require.Len(t, archetypes, 3)
	assert.Equal(t, ids[0].ArchetypeId(), archetypes[0].ID, "creation order")
	assert.Equal(t, 2, archetypes[0].Entities)

	debugui.SortArchetypes(archetypes, debugui.ArchetypeColumnEntities, false)
	assert.Equal(t, 2, archetypes[0].Entities)
	assert.Equal(t, 1, archetypes[2].Entities)

	debugui.SortArchetypes(archetypes, debugui.ArchetypeColumnCount, true)
	assert.Len(t, archetypes[0].Components, 1)
	assert.Equal(t, ids[0].ArchetypeId(), archetypes[0].ID)
}

func TestMatchingArchetypes(t *testing.T) {
	storage, ids := newWorld(t)

	assert.Equal(t,
		[]string{"debugui_test.Body", "debugui_test.Marker", "debugui_test.Point"},
		debugui.ComponentNames(storage))

	matching := debugui.MatchingArchetypes(storage, []string{"debugui_test.Marker"})
	require.Len(t, matching, 2)
	assert.Equal(t, ids[2].ArchetypeId(), matching[0].ID)
	assert.Equal(t, ids[3].ArchetypeId(), matching[1].ID)

	matching = debugui.MatchingArchetypes(storage, []string{"debugui_test.Marker", "debugui_test.Point"})
	require.Len(t, matching, 1)
	assert.Equal(t, 1, matching[0].Entities)

	assert.Len(t, debugui.MatchingArchetypes(storage, nil), 3, "no requirements match everything")
}

func TestFields(t *testing.T) {
	fields := debugui.Fields(reflect.TypeFor[Body]())

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Point", "Mass", "Name", "Solid", "Count"}, names, "unexported fields are skipped")
	assert.Same(t, &fields[0], &debugui.Fields(reflect.TypeFor[Body]())[0], "cached per type")

	assert.Empty(t, debugui.Fields(reflect.TypeFor[Marker]()))
	assert.Empty(t, debugui.Fields(reflect.TypeFor[int]()))
}

func TestSetFieldEditsComponent(t *testing.T) {
	storage, ids := newWorld(t)
	crate := ids[3]

	body := debugui.ComponentValue(storage, crate, reflect.TypeFor[Body]())
	require.True(t, body.IsValid())

	assert.True(t, debugui.SetField(body.FieldByName("Point").FieldByName("X"), int32(7)), "embedded fields are settable")
	assert.True(t, debugui.SetField(body.FieldByName("Mass"), float32(2.5)))
	assert.True(t, debugui.SetField(body.FieldByName("Name"), "barrel"))
	assert.True(t, debugui.SetField(body.FieldByName("Solid"), true))
	assert.True(t, debugui.SetField(body.FieldByName("Count"), int32(3)))

	got := ecs.ReadComponent[Body](storage, crate)
	require.NotNil(t, got)
	assert.Equal(t, int32(7), got.X)
	assert.Equal(t, float32(2.5), got.Mass)
	assert.Equal(t, "barrel", got.Name)
	assert.True(t, got.Solid)
	assert.Equal(t, uint8(3), got.Count)

	assert.False(t, debugui.SetField(body.FieldByName("Count"), int32(-1)), "negative into unsigned")
	assert.False(t, debugui.SetField(body.FieldByName("Name"), int32(65)), "integer into string")
	assert.False(t, debugui.SetField(body.FieldByName("Solid"), "yes"))
	assert.False(t, debugui.SetField(reflect.ValueOf(Point{}).Field(0), int32(1)), "not addressable")
	assert.Equal(t, uint8(3), got.Count)
	assert.Equal(t, "barrel", got.Name)

	assert.False(t, debugui.ComponentValue(storage, ids[0], reflect.TypeFor[Body]()).IsValid())
}

func TestFrameHistory(t *testing.T) {
	history := debugui.NewFrameHistory(4)
	assert.Zero(t, history.Average())

	start := time.Now()
	history.Tick(start)
	assert.Zero(t, history.Average(), "first tick only starts the clock")

	history.Tick(start.Add(10 * time.Millisecond))
	history.Tick(start.Add(30 * time.Millisecond))
	assert.InDelta(t, 15, history.Average(), 0.001)

	for range 4 {
		history.Add(5 * time.Millisecond)
	}
	assert.InDelta(t, 5, history.Average(), 0.001, "old samples roll off")
	assert.Len(t, history.Samples(), 4)
}

func TestInspectorSpawnsWindows(t *testing.T) {
	target, ids := newWorld(t)
	inspector := debugui.NewInspector(target, nil)

	_, ok := inspector.Selected()
	assert.False(t, ok)
	inspector.Select(ids[0])
	selected, ok := inspector.Selected()
	assert.True(t, ok)
	assert.Equal(t, ids[0], selected)

	ui, _ := debugui.NewWorld(inspector)
	items := ecs.NewQuery[struct{ *debugui.ImguiItem }](ui)
	items.Execute()
	assert.Equal(t, 5, items.Len())
	for item := range items.Values() {
		assert.NotNil(t, item.Render)
	}
	assert.True(t, ecs.NewSingleton[debugui.ImguiInputState](ui).Exists())
}
