package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is an ordered list of strings persisted as a JSON document column
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// GormDBDataType stores the list as jsonb on postgres and text elsewhere
func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// Review is a rating left on a recipe. Reviews are embedded in their recipe
// and are append-only. Name is the reviewer's name when the review was left.
type Review struct {
	UserID    uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment" validate:"required"`
	CreatedAt time.Time `json:"created_at"`

	// Reviewer's current display name, filled on read and never persisted.
	// Empty when the account no longer exists.
	ReviewerName string `json:"reviewer_name,omitempty"`
}

// Reviews is the embedded review document of a recipe, in insertion order
type Reviews []Review

// Value implements the driver.Valuer interface
func (r Reviews) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "[]", nil
	}
	stored := make(Reviews, len(r))
	for i, review := range r {
		review.ReviewerName = ""
		stored[i] = review
	}
	b, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (r *Reviews) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// GormDBDataType stores reviews as jsonb on postgres and text elsewhere
func (Reviews) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// Recipe is the recipe aggregate: the recipe body, its embedded reviews and
// the rating derived from them.
type Recipe struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Title        string     `gorm:"size:255;not null" json:"title" validate:"required,notblank,max=255"`
	Description  string     `gorm:"type:text;not null" json:"description" validate:"required,notblank"`
	Category     string     `gorm:"size:100" json:"category" validate:"max=100"`
	Ingredients  StringList `gorm:"not null" json:"ingredients" validate:"required,min=1,dive,required,notblank"`
	Instructions StringList `gorm:"not null" json:"instructions" validate:"required,min=1,dive,required,notblank"`
	CookingTime  int        `gorm:"not null" json:"cooking_time" validate:"gt=0"`
	UserID       uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_owner"`
	Owner        *User      `gorm:"foreignKey:UserID" json:"-"`
	ImageRef     string     `gorm:"size:255" json:"-"`
	Reviews      Reviews    `gorm:"not null" json:"reviews" validate:"dive"`
	Rating       float64    `gorm:"not null;default:0" json:"rating"`
	NumReviews   int        `gorm:"not null;default:0" json:"num_reviews" validate:"min=0"`

	// Read-side fields, never persisted
	OwnerName string `gorm:"-" json:"owner_name,omitempty"`
	Image     string `gorm:"-" json:"recipe_img"`
}

// BeforeCreate assigns the recipe ID
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Reviews == nil {
		r.Reviews = Reviews{}
	}
	return nil
}

// HasImage reports whether the recipe references a stored image
func (r *Recipe) HasImage() bool {
	return r.ImageRef != ""
}

func scanJSON(value interface{}, dest interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		b = []byte("[]")
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(b) == 0 {
		b = []byte("[]")
	}
	return json.Unmarshal(b, dest)
}

func jsonColumnType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}
