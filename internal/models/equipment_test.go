package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeEquipment(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"Монитор 27\"", "display"},
		{"Изогнутый монитор 34\"", "display"},
		{"Механическая клавиатура", "input"},
		{"Беспроводная мышь", "input"},
		{"Настольная лампа", "lighting"},
		{"USB-хаб", "peripheral"},
		{"Веб-камера", "peripheral"},
		{"Наушники", "audio"},
		{"Цветной принтер", "office"},
		{"Кофе-машина", "kitchen"},
		{"Wi-Fi 6E", "network"},
		{"Умный кондиционер", "climate"},
		{"Проектор", "display"},
		{"Подставка для ноутбука", "general"},
		{"", "general"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategorizeEquipment(tt.label), "label=%q", tt.label)
	}
}

func TestCategorizeEquipmentRuleOrder(t *testing.T) {
	// "Веб-камера" matches both the camera rule and the generic камера rule;
	// the earlier declaration must win.
	assert.Equal(t, "peripheral", CategorizeEquipment("Веб-камера"))
	assert.Equal(t, "peripheral", CategorizeEquipment("Документ-камера"))
}
