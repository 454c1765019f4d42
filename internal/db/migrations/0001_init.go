package migrations

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

// Model snapshots: migrations keep their own copies so later model changes
// cannot rewrite history.

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
}

type Token struct {
	Value     string    `gorm:"type:text;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Token) TableName() string { return "tokens" }

type Script struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	Code        string    `gorm:"type:text;not null"`
	Language    string    `gorm:"type:text;not null;default:'python'"`
	IsPublic    bool      `gorm:"not null;default:false;index"`
	Likes       int64     `gorm:"not null;default:0"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`

	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(
		&User{},
		&Token{},
		&Script{},
	); err != nil {
		return err
	}

	m := gormDB.WithContext(ctx).Migrator()
	if err := m.CreateConstraint(&Token{}, "User"); err != nil {
		return err
	}
	if err := m.CreateConstraint(&Script{}, "Author"); err != nil {
		return err
	}

	return nil
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Migrator().DropTable(
		&Script{},
		&Token{},
		&User{},
	)
}
