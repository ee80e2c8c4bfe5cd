package models

import "time"

type WorkType = string

const (
	WorkCoursework    WorkType = "coursework"
	WorkVKR           WorkType = "vkr"
	WorkVKRCoursework WorkType = "vkr/coursework"
)

var WorkTypes = []WorkType{WorkCoursework, WorkVKR, WorkVKRCoursework}

func ValidWorkType(workType string) bool {
	for _, wt := range WorkTypes {
		if wt == workType {
			return true
		}
	}
	return false
}

type TopicState int

const (
	StateUnclaimed TopicState = iota
	StateClaimed
	StateApproved
)

func (s TopicState) String() string {
	switch s {
	case StateClaimed:
		return "claimed"
	case StateApproved:
		return "approved"
	default:
		return "unclaimed"
	}
}

type Topic struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	WorkType    WorkType  `gorm:"not null" json:"work_type"`
	IsApproved  bool      `gorm:"not null;default:false" json:"is_approved"`
	TeacherID   uint      `gorm:"index;not null" json:"teacher_id"`
	Teacher     *User     `gorm:"constraint:OnDelete:CASCADE" json:"teacher,omitempty"`
	StudentID   *uint     `gorm:"uniqueIndex" json:"student_id"`
	Student     *Student  `gorm:"constraint:OnDelete:SET NULL" json:"student,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Topic) Claimed() bool {
	return t.StudentID != nil
}

func (t *Topic) State() TopicState {
	switch {
	case t.StudentID == nil:
		return StateUnclaimed
	case t.IsApproved:
		return StateApproved
	default:
		return StateClaimed
	}
}

// StudentName возвращает ФИО студента, если связь загружена
func (t *Topic) StudentName() string {
	if t.Student == nil || t.Student.User == nil {
		return ""
	}
	return t.Student.User.FullName
}

func (t *Topic) TeacherName() string {
	if t.Teacher == nil {
		return ""
	}
	return t.Teacher.FullName
}

func (t *Topic) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// TopicUpdate: частичное обновление темы, nil-поля не меняются.
// Пустое описание очищает поле (NULL)
type TopicUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	WorkType    *string `json:"work_type"`
}

func (u TopicUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.WorkType == nil
}
