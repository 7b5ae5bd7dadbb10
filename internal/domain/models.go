// Package domain defines the persistence models for users, dogs, preferences
// and interactions. These types are mapped with GORM and form the core data
// layer of the matching backend.
package domain

import (
	"time"
)

// User is an account that can log in, store a preference and rate dogs.
//
// Fields:
//   - ID: autoincrement primary key.
//   - Username: unique login name.
//   - PasswordHash: bcrypt hash; never serialized.
type User struct {
	ID           int64     `json:"id"       gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"type:varchar(150);not null;uniqueIndex:ux_users_username"`
	PasswordHash string    `json:"-"        gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// AuthToken is the opaque bearer credential issued on login. A user holds at
// most one token; logging in again returns the same key.
type AuthToken struct {
	Key       string    `json:"token" gorm:"type:char(40);primaryKey"`
	UserID    int64     `json:"-"     gorm:"not null;uniqueIndex:ux_tokens_user"`
	CreatedAt time.Time `json:"-"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for AuthToken.
func (AuthToken) TableName() string { return "auth_tokens" }

// Dog is an adoptable animal in the catalog. The ID order is the order of
// creation and defines the browsing sequence.
//
// Fields:
//   - Name / ImageFilename: display data.
//   - Breed: optional, may be backfilled after creation.
//   - Age: age in whole months.
//   - Gender: one of GenderCodes.
//   - Size: one of SizeCodes.
type Dog struct {
	ID            int64     `json:"id"             gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name"           gorm:"type:varchar(255);not null;index"`
	ImageFilename string    `json:"image_filename" gorm:"type:varchar(255);not null"`
	Breed         string    `json:"breed"          gorm:"type:varchar(255);not null;default:''"`
	Age           int       `json:"age"            gorm:"not null;check:age >= 0"`
	Gender        string    `json:"gender"         gorm:"type:varchar(1);not null;index"`
	Size          string    `json:"size"           gorm:"type:varchar(2);not null;index"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName returns the database table name for Dog.
func (Dog) TableName() string { return "dogs" }

// AgeStage returns the stage the dog's age falls into under AgeStages, or ""
// when the age is beyond every stage.
func (d Dog) AgeStage() AgeStage { return StageForAge(d.Age) }

// Interaction records one user's decision about one dog. A (user, dog) pair
// has at most one row (unique index ux_interaction_user_dog).
//
// The status column stores "l" (liked), "d" (disliked) or NULL (undecided).
type Interaction struct {
	ID         int64     `json:"id"     gorm:"primaryKey;autoIncrement"`
	UserID     int64     `json:"-"      gorm:"not null;uniqueIndex:ux_interaction_user_dog,priority:1"`
	DogID      int64     `json:"dog"    gorm:"not null;index;uniqueIndex:ux_interaction_user_dog,priority:2"`
	StatusCode *string   `json:"-"      gorm:"column:status;type:varchar(1);index"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Dog  Dog  `json:"-" gorm:"foreignKey:DogID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Interaction.
func (Interaction) TableName() string { return "interactions" }

// Status decodes the stored status column.
func (i Interaction) Status() Status { return StatusFromCode(i.StatusCode) }
