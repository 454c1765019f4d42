package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User represents a registered account of the workshop.
//
// Profile fields that can identify a person carry a paired Public* flag and
// stay private unless the owner opts in.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:text;uniqueIndex;not null"`
	Pseudo       string    `gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	RoleCode     int16     `gorm:"type:smallint;not null;default:0"`

	FirstName string          `gorm:"type:text"`
	LastName  string          `gorm:"type:text"`
	Bio       string          `gorm:"type:text"`
	Website   string          `gorm:"type:text"`
	Avatar    string          `gorm:"type:text"`
	Location  string          `gorm:"type:text"`
	Birthday  *datatypes.Date `gorm:"type:date"`

	PublicEmail    bool `gorm:"not null;default:false"`
	PublicName     bool `gorm:"not null;default:false"`
	PublicBirthday bool `gorm:"not null;default:false"`
	PublicLocation bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`

	Tokens  []Token  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Scripts []Script `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID"`
}

// PublicUser is the externally visible view of a user. Fields guarded by a
// privacy flag are empty unless the owner made them public.
type PublicUser struct {
	ID        uuid.UUID       `json:"id"`
	Pseudo    string          `json:"pseudo"`
	Email     string          `json:"email,omitempty"`
	FirstName string          `json:"first_name,omitempty"`
	LastName  string          `json:"last_name,omitempty"`
	Bio       string          `json:"bio,omitempty"`
	Website   string          `json:"website,omitempty"`
	Avatar    string          `json:"avatar,omitempty"`
	Location  string          `json:"location,omitempty"`
	Birthday  *datatypes.Date `json:"birthday,omitempty"`
	RoleCode  int16           `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// PrivateUser is the owner's view: everything except the password hash.
type PrivateUser struct {
	ID             uuid.UUID       `json:"id"`
	Email          string          `json:"email"`
	Pseudo         string          `json:"pseudo"`
	RoleCode       int16           `json:"role"`
	FirstName      string          `json:"first_name,omitempty"`
	LastName       string          `json:"last_name,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Website        string          `json:"website,omitempty"`
	Avatar         string          `json:"avatar,omitempty"`
	Location       string          `json:"location,omitempty"`
	Birthday       *datatypes.Date `json:"birthday,omitempty"`
	PublicEmail    bool            `json:"public_email"`
	PublicName     bool            `json:"public_name"`
	PublicBirthday bool            `json:"public_birthday"`
	PublicLocation bool            `json:"public_location"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToPublic projects the record through its privacy flags.
func (u *User) ToPublic() PublicUser {
	view := PublicUser{
		ID:        u.ID,
		Pseudo:    u.Pseudo,
		Bio:       u.Bio,
		Website:   u.Website,
		Avatar:    u.Avatar,
		RoleCode:  u.RoleCode,
		CreatedAt: u.CreatedAt,
	}
	if u.PublicEmail {
		view.Email = u.Email
	}
	if u.PublicName {
		view.FirstName = u.FirstName
		view.LastName = u.LastName
	}
	if u.PublicLocation {
		view.Location = u.Location
	}
	if u.PublicBirthday {
		view.Birthday = u.Birthday
	}
	return view
}

// ToPrivate strips the password hash and nothing else.
func (u *User) ToPrivate() PrivateUser {
	return PrivateUser{
		ID:             u.ID,
		Email:          u.Email,
		Pseudo:         u.Pseudo,
		RoleCode:       u.RoleCode,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Bio:            u.Bio,
		Website:        u.Website,
		Avatar:         u.Avatar,
		Location:       u.Location,
		Birthday:       u.Birthday,
		PublicEmail:    u.PublicEmail,
		PublicName:     u.PublicName,
		PublicBirthday: u.PublicBirthday,
		PublicLocation: u.PublicLocation,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
