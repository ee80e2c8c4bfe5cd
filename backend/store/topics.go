package store

import (
	"coursework/backend/models"

	"gorm.io/gorm"
)

func (s *Store) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Teacher").Preload("Student").Preload("Student.User")
}

// GetTopic возвращает тему вместе с автором и студентом
func (s *Store) GetTopic(id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := s.withRelations(s.DB).First(&topic, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

// ListTopics returns topics ordered by id. limit <= 0 means no limit.
func (s *Store) ListTopics(offset, limit int) ([]models.Topic, error) {
	query := s.withRelations(s.DB).Order("id")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var topics []models.Topic
	err := query.Find(&topics).Error
	return topics, err
}

func (s *Store) CountTopics() (int64, error) {
	var total int64
	err := s.DB.Model(&models.Topic{}).Count(&total).Error
	return total, err
}

func (s *Store) ListTopicsByTeacher(teacherID uint) ([]models.Topic, error) {
	var topics []models.Topic
	err := s.withRelations(s.DB).Where("teacher_id = ?", teacherID).Order("id").Find(&topics).Error
	return topics, err
}

// GetStudentTopic возвращает тему, закрепленную за профилем студента
func (s *Store) GetStudentTopic(studentID uint) (*models.Topic, error) {
	var topic models.Topic
	if err := s.withRelations(s.DB).Where("student_id = ?", studentID).First(&topic).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

func (s *Store) CreateTopic(topic *models.Topic) error {
	topic.StudentID = nil
	topic.IsApproved = false
	return s.DB.Create(topic).Error
}

// UpdateTopic writes only the fields present in upd.
func (s *Store) UpdateTopic(id uint, upd models.TopicUpdate) error {
	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		// пустое описание хранится как NULL, как при создании
		if *upd.Description == "" {
			fields["description"] = nil
		} else {
			fields["description"] = *upd.Description
		}
	}
	if upd.WorkType != nil {
		fields["work_type"] = *upd.WorkType
	}
	if len(fields) == 0 {
		return nil
	}

	result := s.DB.Model(&models.Topic{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Переходы состояния темы. Каждый это один UPDATE с условием на текущее
// состояние; false означает, что состояние уже другое.

func (s *Store) casTopic(where string, args []interface{}, fields map[string]interface{}) (bool, error) {
	result := s.DB.Model(&models.Topic{}).Where(where, args...).Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// AssignTopic sets the claimant on an unclaimed topic. If the student already
// owns another topic the unique index rejects the write with gorm.ErrDuplicatedKey.
func (s *Store) AssignTopic(topicID, studentID uint) (bool, error) {
	ok, err := s.casTopic("id = ? AND student_id IS NULL", []interface{}{topicID},
		map[string]interface{}{"student_id": studentID, "is_approved": false})
	if isDuplicate(err) {
		return false, gorm.ErrDuplicatedKey
	}
	return ok, err
}

func (s *Store) UnassignTopic(topicID, studentID uint) (bool, error) {
	return s.casTopic("id = ? AND student_id = ? AND is_approved = ?", []interface{}{topicID, studentID, false},
		map[string]interface{}{"student_id": nil, "is_approved": false})
}

func (s *Store) ApproveTopic(topicID uint) (bool, error) {
	return s.casTopic("id = ? AND student_id IS NOT NULL AND is_approved = ?", []interface{}{topicID, false},
		map[string]interface{}{"is_approved": true})
}

func (s *Store) UnapproveTopic(topicID uint) (bool, error) {
	return s.casTopic("id = ? AND student_id IS NOT NULL AND is_approved = ?", []interface{}{topicID, true},
		map[string]interface{}{"is_approved": false})
}

func (s *Store) RejectTopic(topicID uint) (bool, error) {
	return s.casTopic("id = ? AND student_id IS NOT NULL AND is_approved = ?", []interface{}{topicID, false},
		map[string]interface{}{"student_id": nil, "is_approved": false})
}
