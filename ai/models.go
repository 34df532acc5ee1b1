package ai

// Model is one entry of the Gemini model catalog.
type Model struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// Model groups, ordered from most to least capable.
const (
	GroupHighPerformance = "High Performance"
	GroupBalanced        = "Balanced"
	GroupStandard        = "Standard"
	GroupCostEffective   = "Cost-Effective"
	GroupSpecialized     = "Specialized"
)

// DefaultModel is the image-editing model used when none is chosen.
const DefaultModel = "gemini-2.5-flash-image"

// Models is the fixed catalog offered to the user.
var Models = []Model{
	{ID: "gemini-3-pro-preview", Name: "Gemini 3 Pro (New)", Group: GroupHighPerformance},
	{ID: "gemini-3-flash-preview", Name: "Gemini 3 Flash (New)", Group: GroupBalanced},
	{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro", Group: GroupStandard},
	{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Group: GroupCostEffective},
	{ID: DefaultModel, Name: "Gemini 2.5 Flash Image (Text Eraser)", Group: GroupSpecialized},
}

// ModelGroup is a named slice of the catalog.
type ModelGroup struct {
	Name   string  `json:"name"`
	Models []Model `json:"models"`
}

// Groups returns the catalog grouped by tier, in catalog order.
func Groups() []ModelGroup {
	var out []ModelGroup
	index := make(map[string]int)
	for _, m := range Models {
		i, ok := index[m.Group]
		if !ok {
			i = len(out)
			index[m.Group] = i
			out = append(out, ModelGroup{Name: m.Group})
		}
		out[i].Models = append(out[i].Models, m)
	}
	return out
}

// Lookup finds a catalog model by id.
func Lookup(id string) (Model, bool) {
	for _, m := range Models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}
