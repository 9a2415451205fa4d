package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glyphwalk/ecs"
)

const entitiesPerPage = 100

// Inspector renders windows that browse and edit a target Storage: an entity
// browser, a component inspector for the selected entity, an archetype
// viewer, a query debugger and performance stats.
type Inspector struct {
	target *ecs.Storage
	stats  func() *ecs.SchedulerStats

	selected    ecs.EntityId
	hasSelected bool
	archetype   *uint32

	entities     []EntityInfo
	entitySort   tableSort
	filter       string
	page         int
	lastEntities int

	archetypeSort tableSort
	queryTypes    map[string]bool

	history *FrameHistory
}

// NewInspector inspects target. stats may be nil; when set it supplies the
// scheduler timings shown in the performance window.
func NewInspector(target *ecs.Storage, stats func() *ecs.SchedulerStats) *Inspector {
	return &Inspector{
		target:        target,
		stats:         stats,
		entitySort:    tableSort{column: EntityColumnID, ascending: true},
		archetypeSort: tableSort{column: ArchetypeColumnID, ascending: true},
		queryTypes:    make(map[string]bool),
		lastEntities:  -1,
		history:       NewFrameHistory(120),
	}
}

// Spawn adds one ImguiItem per inspector window to ui.
func (in *Inspector) Spawn(ui *ecs.Storage) {
	for _, render := range []func(){
		in.renderEntityBrowser,
		in.renderComponentInspector,
		in.renderArchetypeViewer,
		in.renderQueryDebugger,
		in.renderPerformance,
	} {
		ui.Spawn(ImguiItem{Render: render})
	}
}

// Select makes id the entity shown by the component inspector.
func (in *Inspector) Select(id ecs.EntityId) {
	in.selected, in.hasSelected = id, true
}

// Selected returns the selected entity, if any.
func (in *Inspector) Selected() (ecs.EntityId, bool) {
	return in.selected, in.hasSelected
}

type tableSort struct {
	column    int
	ascending bool
}

// read picks up a sort change from the current table and reports whether
// there was one.
func (t *tableSort) read() bool {
	specs := imgui.TableGetSortSpecs()
	if !specs.SpecsDirty() || specs.SpecsCount() == 0 {
		return false
	}
	spec := specs.Specs()
	t.column = int(spec.ColumnIndex())
	t.ascending = spec.SortDirection() == imgui.SortDirectionAscending
	specs.SetSpecsDirty(false)
	return true
}

func (in *Inspector) refreshEntities() {
	if count := in.target.EntityCount(); count != in.lastEntities {
		in.entities = CollectEntities(in.target)
		SortEntities(in.entities, in.entitySort.column, in.entitySort.ascending)
		in.lastEntities = count
	}
}

func (in *Inspector) renderEntityBrowser() {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	in.refreshEntities()

	imgui.InputTextWithHint("##search", "Search...", &in.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		in.filter = ""
		in.archetype = nil
	}
	if in.archetype != nil {
		imgui.Text(fmt.Sprintf("Archetype 0x%X only", *in.archetype))
	}

	visible := FilterEntities(in.entities, in.filter, in.archetype)
	pages := max(1, (len(visible)+entitiesPerPage-1)/entitiesPerPage)
	in.page = min(in.page, pages-1)

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, flags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		if in.entitySort.read() {
			SortEntities(in.entities, in.entitySort.column, in.entitySort.ascending)
		}

		start := in.page * entitiesPerPage
		for _, e := range visible[start:min(start+entitiesPerPage, len(visible))] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", e.ID), in.hasSelected && in.selected == e.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				in.Select(e.ID)
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", e.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(e.Components, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(e.Components)))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", in.page+1, pages, len(visible)))
	imgui.SameLine()
	if imgui.Button("Prev") && in.page > 0 {
		in.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && in.page < pages-1 {
		in.page++
	}

	imgui.End()
}

func (in *Inspector) renderComponentInspector() {
	if !imgui.BeginV("Components", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !in.hasSelected {
		imgui.Text("No entity selected")
		return
	}

	archetype := in.target.GetArchetypeById(in.selected.ArchetypeId())
	if archetype == nil || archetype.Len() <= int(in.selected.Index()) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", in.selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d", in.selected))
	imgui.Text(fmt.Sprintf("Archetype 0x%X row %d", archetype.ID(), in.selected.Index()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		value := ComponentValue(in.target, in.selected, compType)
		if !value.IsValid() {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderStruct(compType.String(), value)
			imgui.TreePop()
		}
	}
}

// renderStruct draws an editor for every exported field of value. Edits are
// written straight into the component.
func renderStruct(id string, value reflect.Value) {
	fields := Fields(value.Type())
	if len(fields) == 0 {
		imgui.Text("(no fields)")
		return
	}
	for _, f := range fields {
		renderField(id+"."+f.Name, f.Name, value.Field(f.Index))
	}
}

func renderField(id, name string, field reflect.Value) {
	label := "##" + id
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(field.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			SetField(field, v)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(field.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			SetField(field, v)
		}
	case reflect.Float32, reflect.Float64:
		v := float32(field.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			SetField(field, v)
		}
	case reflect.Bool:
		v := field.Bool()
		if imgui.Checkbox(name+label, &v) {
			SetField(field, v)
		}
	case reflect.String:
		v := field.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			SetField(field, v)
		}
	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderStruct(id, field)
			imgui.TreePop()
		}
	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: %s[%d]", name, field.Type(), field.Len()))
	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, field.Interface()))
	}
}

func (in *Inspector) renderArchetypeViewer() {
	if !imgui.BeginV("Archetypes", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	archetypes := CollectArchetypes(in.target)
	SortArchetypes(archetypes, in.archetypeSort.column, in.archetypeSort.ascending)

	largest := 0
	for _, a := range archetypes {
		largest = max(largest, a.Entities)
	}

	imgui.Text(fmt.Sprintf("%d archetypes, click one to filter the entity list", len(archetypes)))

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("ArchetypeTable", 4, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Archetype")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Types")
	imgui.TableSetupColumn("Entities")
	imgui.TableHeadersRow()
	in.archetypeSort.read()

	for _, a := range archetypes {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		if imgui.SelectableBoolV(fmt.Sprintf("0x%X", a.ID), in.archetype != nil && *in.archetype == a.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			id := a.ID
			in.archetype = &id
		}
		imgui.TableNextColumn()
		imgui.Text(strings.Join(a.Components, ", "))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", len(a.Components)))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", a.Entities))

		if largest > 0 {
			width := float32(a.Entities) / float32(largest) * 80
			imgui.SameLine()
			pos := imgui.CursorScreenPos()
			imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+width, pos.Y+10),
				imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6)))
		}
	}
	imgui.EndTable()
}

func (in *Inspector) renderQueryDebugger() {
	if !imgui.BeginV("Query", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if imgui.Button("Clear All") {
		clear(in.queryTypes)
	}
	imgui.Separator()

	var required []string
	for _, name := range ComponentNames(in.target) {
		checked := in.queryTypes[name]
		if imgui.Checkbox(name, &checked) {
			in.queryTypes[name] = checked
		}
		if checked {
			required = append(required, name)
		}
	}
	imgui.Separator()

	if len(required) == 0 {
		imgui.Text("No component types selected")
		return
	}

	matching := MatchingArchetypes(in.target, required)
	total := 0
	for _, a := range matching {
		total += a.Entities
	}
	imgui.Text(fmt.Sprintf("Matching archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching entities: %d", total))

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("QueryTable", 3, flags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()
		for _, a := range matching {
			imgui.TableNextRow()
			imgui.TableSetColumnIndex(0)
			imgui.Text(fmt.Sprintf("0x%X", a.ID))
			imgui.TableSetColumnIndex(1)
			imgui.Text(strings.Join(a.Components, ", "))
			imgui.TableSetColumnIndex(2)
			imgui.Text(fmt.Sprintf("%d", a.Entities))
		}
		imgui.EndTable()
	}
}

func (in *Inspector) renderPerformance() {
	in.history.Tick(time.Now())

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	storage := in.target.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", storage.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", storage.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", storage.SingletonCount))

	if avg := in.history.Average(); avg > 0 {
		imgui.Text(fmt.Sprintf("Frame time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	samples := in.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if in.stats != nil && imgui.TreeNodeStr("Systems") {
		stats := in.stats()
		imgui.Text(fmt.Sprintf("%d frames, %d stages", stats.Frames, stats.StageCount))

		const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTable", 5, flags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Stage")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()
			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.Stage))
				imgui.TableNextColumn()
				imgui.Text(s.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, t := range storage.SingletonTypes {
			imgui.BulletText(t.String())
		}
		imgui.TreePop()
	}
}
