package quirks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Isilon/isilon-sdk/internal/equalutil"
	"github.com/Isilon/isilon-sdk/normalizer"
	"github.com/Isilon/isilon-sdk/papi"
)

// Rule is a single correction.
type Rule struct {
	// Name identifies the rule in notes.
	Name string
	// Match selects the definitions the rule applies to.
	Match func(definition string) bool
	// Apply rewrites obj in place and returns one note per change made.
	Apply func(obj *papi.ObjectSchema) []string
}

// Catalog applies its rules in order.
type Catalog struct {
	rules []Rule
}

var _ normalizer.Fixups = (*Catalog)(nil)

// New creates a catalog from rules.
func New(rules ...Rule) *Catalog {
	return &Catalog{rules: slices.Clone(rules)}
}

// Default returns the catalog of every known correction.
func Default() *Catalog {
	return New(Rules()...)
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// Fix implements normalizer.Fixups.
func (c *Catalog) Fix(definition string, obj *papi.ObjectSchema) (*papi.ObjectSchema, []string) {
	if c == nil || obj == nil {
		return obj, nil
	}
	var notes []string
	for _, r := range c.rules {
		if !r.Match(definition) {
			continue
		}
		for _, note := range r.Apply(obj) {
			notes = append(notes, r.Name+": "+note)
		}
	}
	return obj, notes
}

func exactly(names ...string) func(string) bool {
	return func(def string) bool { return slices.Contains(names, def) }
}

func prefixed(prefixes ...string) func(string) bool {
	return func(def string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(def, p) {
				return true
			}
		}
		return false
	}
}

func everything(string) bool { return true }

// Rules returns the known corrections in the order they are applied.
func Rules() []Rule {
	return []Rule{
		{Name: "misspelled-description", Match: everything, Apply: fixDescriptions},
		{Name: "statistics-operation", Match: exactly("StatisticsOperation"), Apply: fixStatisticsOperation},
		{Name: "health-flags", Match: prefixed("StoragepoolNodepool", "StoragepoolStoragepool"), Apply: liftHealthFlags},
		{Name: "items-required", Match: exactly("StoragepoolStatusUnhealthyItem"), Apply: dropItemsRequired},
		{Name: "items-required", Match: prefixed("Job"), Apply: draft4ItemsRequired},
		{
			Name:  "duplicate-enum",
			Match: exactly("SmbSettingsGlobalSettingsAuditGlobalSaclItem", "SmbSettingsGlobalAuditGlobalSaclItem"),
			Apply: dedupePermissionEnum,
		},
		{Name: "tape-devices", Match: exactly("HardwareTapes"), Apply: nestTapeDevices},
		{Name: "ignore-case", Match: prefixed("EventAlertCondition"), Apply: dropIgnoreCase},
		{Name: "histogram-data", Match: exactly("HistogramStatByBreakout"), Apply: fixHistogramData},
		{Name: "array-properties", Match: prefixed("Ndmp"), Apply: wrapArrayProperties},
		{Name: "protocol-stats", Match: prefixed("SummaryProtocolStatsProtocol"), Apply: restructureProtocol},
		{Name: "fcports", Match: exactly("HardwareFcportsNode"), Apply: liftFcportsItems},
	}
}

// misspellings of "description" seen upstream.
var misspellings = []string{"descriprion", "descriptoin", "desciption", "description:"}

func fixDescription(b *papi.Base) (string, bool) {
	for _, key := range misspellings {
		v, ok := b.Extra[key]
		if !ok {
			continue
		}
		delete(b.Extra, key)
		if s, isString := v.(string); isString && b.Description == "" {
			b.Description = s
		}
		return key, true
	}
	return "", false
}

func fixDescriptions(obj *papi.ObjectSchema) []string {
	var notes []string
	if key, ok := fixDescription(&obj.Base); ok {
		notes = append(notes, fmt.Sprintf("found 'description' misspelled as %q", key))
	}
	for _, name := range obj.PropertyNames() {
		if key, ok := fixDescription(obj.Properties[name].Common()); ok {
			notes = append(notes, fmt.Sprintf("found 'description' of %q misspelled as %q", name, key))
		}
	}
	return notes
}

// fixStatisticsOperation replaces an "operations" list holding a single
// {"operation": schema} entry with an "operation" property.
func fixStatisticsOperation(obj *papi.ObjectSchema) []string {
	list, ok := obj.Invalid["operations"].([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	entry, ok := toMap(list[0])
	if !ok {
		return nil
	}
	f, err := papi.ParseFragment(entry["operation"])
	if err != nil {
		return nil
	}
	delete(obj.Invalid, "operations")
	if obj.Properties == nil {
		obj.Properties = make(map[string]papi.Fragment)
	}
	obj.Properties["operation"] = f
	return []string{"replace 'operations' property with 'operation'"}
}

func liftHealthFlags(obj *papi.ObjectSchema) []string {
	raw, ok := obj.Extra["health_flags"]
	if !ok {
		return nil
	}
	f, err := papi.ParseFragment(raw)
	if err != nil {
		return nil
	}
	delete(obj.Extra, "health_flags")
	if obj.Properties == nil {
		obj.Properties = make(map[string]papi.Fragment)
	}
	obj.Properties["health_flags"] = f
	return []string{"move 'health_flags' property under 'properties'"}
}

func dropItemsRequired(obj *papi.ObjectSchema) []string {
	a, ok := obj.Properties["health_flags"].(*papi.ArraySchema)
	if !ok || a.Items == nil || !a.Items.Common().Required {
		return nil
	}
	a.Items.Common().Required = false
	return []string{"remove 'required' from array items"}
}

// draft4ItemsRequired moves a required flag from array items onto the array.
func draft4ItemsRequired(obj *papi.ObjectSchema) []string {
	var notes []string
	for _, name := range obj.PropertyNames() {
		a, ok := obj.Properties[name].(*papi.ArraySchema)
		if !ok || a.Items == nil || !a.Items.Common().Required {
			continue
		}
		a.Items.Common().Required = false
		a.Required = true
		notes = append(notes, fmt.Sprintf("move 'required' of %q items to the array", name))
	}
	return notes
}

func dedupePermissionEnum(obj *papi.ObjectSchema) []string {
	a, ok := obj.Properties["permission"].(*papi.ArraySchema)
	if !ok || a.Items == nil {
		return nil
	}
	c := a.Items.Common()
	var out []any
	for _, v := range c.Enum {
		if !slices.ContainsFunc(out, func(o any) bool { return equalutil.EqualValue(o, v) }) {
			out = append(out, v)
		}
	}
	if len(out) == len(c.Enum) {
		return nil
	}
	c.Enum = out
	return []string{"remove duplicate 'permission' enum values"}
}

// nestTapeDevices turns a "devices" property carrying media_changers and
// tapes as loose keys into an object of two arrays.
func nestTapeDevices(obj *papi.ObjectSchema) []string {
	prop, ok := obj.Properties["devices"]
	if !ok {
		return nil
	}
	extra := prop.Common().Extra
	changers, hasChangers := extra["media_changers"]
	tapes, hasTapes := extra["tapes"]
	if !hasChangers || !hasTapes {
		return nil
	}
	props := make(map[string]papi.Fragment, 2)
	for name, raw := range map[string]any{"media_changers": changers, "tapes": tapes} {
		items, err := papi.ParseFragment(raw)
		if err != nil {
			return nil
		}
		props[name] = &papi.ArraySchema{Items: items}
	}
	obj.Properties["devices"] = &papi.ObjectSchema{
		Base:       papi.Base{Description: "Information of Tape/MC device"},
		Properties: props,
	}
	return []string{"move 'media_changers' and 'tapes' into a 'devices' object"}
}

func dropIgnoreCase(obj *papi.ObjectSchema) []string {
	var notes []string
	for _, name := range obj.PropertyNames() {
		prop := obj.Properties[name]
		removed := deleteExtra(prop.Common(), "ignore_case")
		if a, ok := prop.(*papi.ArraySchema); ok && a.Items != nil {
			removed = deleteExtra(a.Items.Common(), "ignore_case") || removed
		}
		if removed {
			notes = append(notes, fmt.Sprintf("remove custom 'ignore_case' field from %q", name))
		}
	}
	return notes
}

func fixHistogramData(obj *papi.ObjectSchema) []string {
	a, ok := obj.Properties["data"].(*papi.ArraySchema)
	if !ok || !deleteExtra(&a.Base, "properties") {
		return nil
	}
	a.Items = &papi.ArraySchema{Items: &papi.ScalarSchema{Type: "integer"}}
	a.BareItems, a.ItemMisspelled, a.InvalidItems = false, false, nil
	return []string{"correct 'data' to an array of integer arrays"}
}

// wrapArrayProperties moves "properties" declared on an array into an
// object items schema.
func wrapArrayProperties(obj *papi.ObjectSchema) []string {
	var notes []string
	for _, name := range obj.PropertyNames() {
		a, ok := obj.Properties[name].(*papi.ArraySchema)
		if !ok {
			continue
		}
		raw, ok := a.Extra["properties"]
		if !ok {
			continue
		}
		items, err := papi.ParseFragment(map[string]any{"type": "object", "properties": raw})
		if err != nil {
			continue
		}
		delete(a.Extra, "properties")
		a.Items = items
		notes = append(notes, fmt.Sprintf("move %q array 'properties' into 'items'", name))
	}
	return notes
}

// restructureProtocol rebuilds a "protocol" array whose per-protocol data
// shape is given as the first element of a "data" list.
func restructureProtocol(obj *papi.ObjectSchema) []string {
	a, ok := obj.Properties["protocol"].(*papi.ArraySchema)
	if !ok {
		return nil
	}
	list, ok := a.Extra["data"].([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	items, err := papi.ParseFragment(map[string]any{"type": "object", "properties": list[0]})
	if err != nil {
		return nil
	}
	obj.Properties["protocol"] = &papi.ObjectSchema{
		Base: papi.Base{Description: a.Description, Required: a.Required},
		Properties: map[string]papi.Fragment{
			"name": &papi.ScalarSchema{Type: "string"},
			"data": &papi.ArraySchema{Items: items},
		},
	}
	return []string{"restructure the 'protocol' property object"}
}

func liftFcportsItems(obj *papi.ObjectSchema) []string {
	a, ok := obj.Properties["fcports"].(*papi.ArraySchema)
	if !ok {
		return nil
	}
	raw, ok := a.Extra["properties"]
	if !ok {
		return nil
	}
	items, err := papi.ParseFragment(raw)
	if err != nil {
		return nil
	}
	delete(a.Extra, "properties")
	a.Items = items
	return []string{"move 'fcports' array properties into 'items'"}
}

func deleteExtra(b *papi.Base, key string) bool {
	if _, ok := b.Extra[key]; !ok {
		return false
	}
	delete(b.Extra, key)
	return true
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}
