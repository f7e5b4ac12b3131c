package store

import (
	"errors"
	"strings"

	"github.com/parthhpatil200/inventory-manager/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Default administrator account created on first run.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
	adminEmail    = "admin@example.com"
	adminName     = "Administrator"
)

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Register validates the signup input and creates the account. The insert
// relies on the unique indexes on username and email, so two concurrent
// registrations of the same handle cannot both succeed: the loser gets
// ErrDuplicateKey.
func (s *Store) Register(in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	switch {
	case in.Username == "":
		return nil, missingField("username")
	case in.Email == "":
		return nil, missingField("email")
	case in.Name == "":
		return nil, missingField("name")
	case in.Password == "":
		return nil, missingField("password")
	case in.ConfirmPassword == "":
		return nil, missingField("confirm_password")
	}

	if !strings.Contains(in.Email, "@") || !strings.Contains(in.Email, ".") {
		return nil, &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if in.Password != in.ConfirmPassword {
		return nil, &ValidationError{Field: "confirm_password", Reason: "passwords do not match"}
	}
	if len(in.Password) < 6 {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 6 characters long"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username: in.Username,
		Password: string(hash),
		Email:    in.Email,
		Name:     in.Name,
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrDuplicateKey
	}

	return &user, nil
}

// Authenticate looks up the account by username and compares the bcrypt
// hash. Any mismatch yields ErrInvalidCredentials; callers must not leak
// whether the username exists.
func (s *Store) Authenticate(username, password string) (*model.User, error) {
	var user model.User
	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, result.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// SeedAdmin inserts the default administrator account if it is absent.
// Idempotent across startups: the unique index on username makes repeated
// seeding a no-op.
func (s *Store) SeedAdmin() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username: AdminUsername,
		Password: string(hash),
		Email:    adminEmail,
		Name:     adminName,
	}

	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error
}
