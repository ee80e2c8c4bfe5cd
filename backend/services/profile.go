package services

import (
	"coursework/backend/models"
	"coursework/backend/utils"
	"fmt"
)

type ProfileStore interface {
	GetStudentByUserID(userID uint) (*models.Student, error)
	GetTeacherByUserID(userID uint) (*models.Teacher, error)
	GetStudentTopic(studentID uint) (*models.Topic, error)
	UpdatePasswordHash(userID uint, hash string) error
}

// Profile: данные аккаунта без хеша пароля
type Profile struct {
	User    *models.User    `json:"user"`
	Student *models.Student `json:"student,omitempty"`
	Teacher *models.Teacher `json:"teacher,omitempty"`
	Topic   *models.Topic   `json:"topic,omitempty"`
}

type ProfileService struct {
	Store ProfileStore
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{Store: store}
}

// Profile collects the account, its role profile and, for a student, the held topic.
func (s *ProfileService) Profile(actor *models.User) (*Profile, error) {
	if actor == nil {
		return nil, ErrInvalidCredentials
	}
	p := &Profile{User: actor}

	switch actor.Role {
	case models.RoleStudent:
		student, err := s.Store.GetStudentByUserID(actor.ID)
		if err != nil {
			return nil, fmt.Errorf("load student profile: %w", err)
		}
		if student == nil {
			return p, nil
		}
		p.Student = student
		topic, err := s.Store.GetStudentTopic(student.ID)
		if err != nil {
			return nil, fmt.Errorf("load student topic: %w", err)
		}
		p.Topic = topic
	case models.RoleTeacher:
		teacher, err := s.Store.GetTeacherByUserID(actor.ID)
		if err != nil {
			return nil, fmt.Errorf("load teacher profile: %w", err)
		}
		p.Teacher = teacher
	}
	return p, nil
}

// ChangePassword replaces the actor's password after checking the current one.
func (s *ProfileService) ChangePassword(actor *models.User, current, next string) error {
	if actor == nil {
		return ErrInvalidCredentials
	}
	if next == "" {
		return ErrEmptyPassword
	}
	if !utils.CheckPassword(current, actor.PasswordHash) {
		return ErrWrongPassword
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.UpdatePasswordHash(actor.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	actor.PasswordHash = hash
	return nil
}
