package models

// Workspace describes a single bookable desk together with the static
// attributes shown to the user: its floor, the equipment on the desk itself
// and the shared equipment available on that floor.
type Workspace struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Floor          int      `yaml:"floor" json:"floor"`
	Capacity       int      `yaml:"capacity" json:"capacity"`
	DeskEquipment  []string `yaml:"desk_equipment" json:"desk_equipment"`
	FloorEquipment []string `yaml:"floor_equipment" json:"floor_equipment"`
	Available      bool     `yaml:"available" json:"available"`
	// NextAvailable is the "HH:MM" time the desk is expected to free up.
	// Only meaningful while Available is false.
	NextAvailable string `yaml:"next_available,omitempty" json:"next_available,omitempty"`
}
