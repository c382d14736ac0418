package models

// IdCounter represents a record in id_counters table.
// The sole source of new entity ID suffixes; incremented with a single
// atomic UPDATE ... RETURNING statement, never read-modify-write.
type IdCounter struct {
	IdType       string `gorm:"primarykey;size:20" json:"id_type"`
	CurrentValue int64  `gorm:"not null;default:0" json:"current_value"`
}

func (IdCounter) TableName() string {
	return "id_counters"
}
