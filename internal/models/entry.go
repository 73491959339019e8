package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/nutrition"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// JSONBNutrients stores a nutrition.Nutrients value as JSONB.
type JSONBNutrients nutrition.Nutrients

func (n JSONBNutrients) Value() (driver.Value, error) {
	return json.Marshal(n)
}

func (n *JSONBNutrients) Scan(value interface{}) error {
	if value == nil {
		*n = JSONBNutrients{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, n)
}

// JSONBEstimate stores a single nutrition.Estimate as JSONB; used for the
// optional estimated mass.
type JSONBEstimate struct {
	nutrition.Estimate
}

func (e JSONBEstimate) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *JSONBEstimate) Scan(value interface{}) error {
	if value == nil {
		*e = JSONBEstimate{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, e)
}

// Entry is one raw meal submission. It is immutable after creation except by
// deletion, which cascades to its food items.
type Entry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`

	RawText     string    `gorm:"type:text" json:"raw_text"`
	PhotoURL    string    `gorm:"size:512" json:"photo_url,omitempty"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`

	// LogDate is the resolved calendar day (YYYY-MM-DD) the entry counts
	// toward; DateExplicit records whether it came from explicit user text.
	LogDate      string `gorm:"size:10;not null;index:idx_entries_user_date" json:"log_date"`
	DateExplicit bool   `gorm:"not null;default:false" json:"date_explicit"`

	// ParseWarnings holds non-fatal estimator inconsistencies (bound
	// inversions, fat breakdown mismatches). The entry is stored either way.
	ParseWarnings JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"parse_warnings"`

	Embedding pgvector.Vector `gorm:"type:vector(3)" json:"-"`

	Items []FoodItem `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Entry) TableName() string {
	return "entries"
}

// FoodItem is one estimated food of an entry. Immutable once created except
// through the manual-override path, which records which fields it touched.
type FoodItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	EntryID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"entry_id"`

	Name      string         `gorm:"size:255;not null" json:"name"`
	Nutrients JSONBNutrients `gorm:"type:jsonb;not null;default:'{}'" json:"nutrients"`
	MassGrams *JSONBEstimate `gorm:"type:jsonb" json:"mass_grams,omitempty"`

	Assumptions      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"assumptions"`
	OverriddenFields JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"overridden_fields"`
	HasOverride      bool             `gorm:"not null;default:false" json:"has_override"`
}

func (FoodItem) TableName() string {
	return "food_items"
}

// ToNutritionItem converts the stored row into the pure calculation type.
func (f *FoodItem) ToNutritionItem() nutrition.Item {
	item := nutrition.Item{
		Name:             f.Name,
		Nutrients:        nutrition.Nutrients(f.Nutrients),
		Assumptions:      f.Assumptions,
		OverriddenFields: f.OverriddenFields,
		HasOverride:      f.HasOverride,
	}
	if f.MassGrams != nil {
		mass := f.MassGrams.Estimate
		item.MassGrams = &mass
	}
	return item
}

// ApplyNutritionItem writes a calculation-layer item back onto the row.
func (f *FoodItem) ApplyNutritionItem(item nutrition.Item) {
	f.Nutrients = JSONBNutrients(item.Nutrients)
	f.OverriddenFields = item.OverriddenFields
	f.HasOverride = item.HasOverride
	if item.MassGrams != nil {
		mass := JSONBEstimate{Estimate: *item.MassGrams}
		f.MassGrams = &mass
	}
}
