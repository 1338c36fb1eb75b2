package models

import "strings"

// EquipmentRule maps a label fragment to a category. Rules are evaluated in
// declaration order; the first match wins.
type EquipmentRule struct {
	Fragment string
	Category string
}

var equipmentRules = []EquipmentRule{
	{"монитор", "display"},
	{"клавиатура", "input"},
	{"мышь", "input"},
	{"трекбол", "input"},
	{"лампа", "lighting"},
	{"подсветка", "lighting"},
	{"usb", "peripheral"},
	{"веб-камера", "peripheral"},
	{"камера", "peripheral"},
	{"наушники", "audio"},
	{"принтер", "office"},
	{"кофе", "kitchen"},
	{"кухня", "kitchen"},
	{"бар", "kitchen"},
	{"wi-fi", "network"},
	{"кондиционер", "climate"},
	{"проектор", "display"},
}

// CategorizeEquipment resolves an equipment label to a coarse category via
// case-insensitive substring matching, defaulting to "general".
func CategorizeEquipment(label string) string {
	lower := strings.ToLower(label)
	for _, rule := range equipmentRules {
		if strings.Contains(lower, rule.Fragment) {
			return rule.Category
		}
	}
	return "general"
}
