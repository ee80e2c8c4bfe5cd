package store

import (
	"coursework/backend/models"

	"gorm.io/gorm"
)

func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("id").Find(&users).Error
	return users, err
}

func (s *Store) ListUsersByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	err := s.DB.Where("role = ?", role).Order("id").Find(&users).Error
	return users, err
}

// CreateUser inserts an account. A login that already exists is reported as
// created == false without an error.
func (s *Store) CreateUser(user *models.User) (bool, error) {
	if err := s.DB.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateStudentAccount inserts the account and its student profile in one transaction.
func (s *Store) CreateStudentAccount(user *models.User, profile *models.Student) (bool, error) {
	return s.createWithProfile(user, func(tx *gorm.DB) error {
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (s *Store) CreateTeacherAccount(user *models.User, profile *models.Teacher) (bool, error) {
	return s.createWithProfile(user, func(tx *gorm.DB) error {
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (s *Store) createWithProfile(user *models.User, createProfile func(tx *gorm.DB) error) (bool, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return createProfile(tx)
	})
	if err != nil {
		user.ID = 0
		if isDuplicate(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) GetStudentByUserID(userID uint) (*models.Student, error) {
	var student models.Student
	if err := s.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (s *Store) GetTeacherByUserID(userID uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := s.DB.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &teacher, nil
}

func (s *Store) UpdatePasswordHash(userID uint, hash string) error {
	result := s.DB.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
