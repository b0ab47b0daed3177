package service

import (
	"errors"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type UpdateProfileInput struct {
	Name        string `json:"name"`
	Campus      string `json:"campus"`
	Language    string `json:"language"`
	Phone       string `json:"phone"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" binding:"omitempty,min=8"`
}

// UpdateProfile applies the settings-page self-edit. A password change
// requires the old password to verify.
func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Campus != "" {
		user.Campus = input.Campus
	}
	if input.Language != "" {
		user.Language = input.Language
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if input.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
			return nil, util.ErrInvalidCredentials
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

type AssignUserInput struct {
	Role               model.UserRole `json:"role"`
	Campus             string         `json:"campus"`
	LadderID           *uint          `json:"ladderId"`
	CanViewAllCampuses *bool          `json:"canViewAllCampuses"`
	Disabled           *bool          `json:"disabled"`
}

// AssignUser is the admin-side edit: role, campus, ladder assignment, report
// capability.
func (s *UserService) AssignUser(userID uint, input AssignUserInput) (*model.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Campus != "" {
		user.Campus = input.Campus
	}
	if input.LadderID != nil {
		user.LadderID = input.LadderID
	}
	if input.CanViewAllCampuses != nil {
		user.CanViewAllCampuses = *input.CanViewAllCampuses
	}
	if input.Disabled != nil {
		user.Disabled = *input.Disabled
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(campus string) ([]model.User, error) {
	if campus != "" {
		return s.UserRepo.ListByCampus(campus)
	}
	return s.UserRepo.ListAll()
}
