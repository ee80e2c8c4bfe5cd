package services

import (
	"coursework/backend/models"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

// TopicStore is the part of the persistence layer the lifecycle engine uses.
type TopicStore interface {
	GetStudentByUserID(userID uint) (*models.Student, error)
	GetTopic(id uint) (*models.Topic, error)
	GetStudentTopic(studentID uint) (*models.Topic, error)
	ListTopics(offset, limit int) ([]models.Topic, error)
	CountTopics() (int64, error)
	ListTopicsByTeacher(teacherID uint) ([]models.Topic, error)
	CreateTopic(topic *models.Topic) error
	UpdateTopic(id uint, upd models.TopicUpdate) error
	AssignTopic(topicID, studentID uint) (bool, error)
	UnassignTopic(topicID, studentID uint) (bool, error)
	ApproveTopic(topicID uint) (bool, error)
	UnapproveTopic(topicID uint) (bool, error)
	RejectTopic(topicID uint) (bool, error)
}

// SettingsStore is the key-value settings table.
type SettingsStore interface {
	GetSetting(name string) (string, bool, error)
	SetSetting(name, value string) error
}

// TopicService implements the topic lifecycle:
//
//	Unclaimed --claim--> Claimed --approve--> Approved
//	Claimed --unclaim/reject--> Unclaimed
//	Approved --unapprove--> Claimed
type TopicService struct {
	Store    TopicStore
	Settings SettingsStore
	Now      func() time.Time
}

func NewTopicService(store TopicStore, settings SettingsStore) *TopicService {
	return &TopicService{Store: store, Settings: settings, Now: time.Now}
}

type TopicInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	WorkType    string `json:"work_type" form:"work_type"`
}

// TopicView: тема для кабинета преподавателя с флагом дедлайна
type TopicView struct {
	models.Topic
	DeadlinePassed bool
}

func (s *TopicService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// DeadlinePassed reports whether today (taken from now) is strictly after the
// deadline date. A value that does not parse never locks anything.
func DeadlinePassed(value string, now time.Time) bool {
	deadline, err := time.Parse(DateLayout, value)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.After(deadline)
}

// Deadline returns the stored VKR edit deadline or "" when none is set.
func (s *TopicService) Deadline() (string, error) {
	value, _, err := s.Settings.GetSetting(models.SettingVKRDeadline)
	if err != nil {
		return "", fmt.Errorf("load deadline: %w", err)
	}
	return value, nil
}

func (s *TopicService) SetDeadline(actor *models.User, value string) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return ErrInvalidDate
	}
	if err := s.Settings.SetSetting(models.SettingVKRDeadline, date.Format(DateLayout)); err != nil {
		return fmt.Errorf("save deadline: %w", err)
	}
	return nil
}

// DeadlineLocked: only the plain "vkr" work type is subject to the deadline;
// "coursework" and "vkr/coursework" never lock.
func (s *TopicService) DeadlineLocked(topic *models.Topic) (bool, error) {
	if topic.WorkType != models.WorkVKR {
		return false, nil
	}
	value, ok, err := s.Settings.GetSetting(models.SettingVKRDeadline)
	if err != nil {
		return false, fmt.Errorf("load deadline: %w", err)
	}
	if !ok {
		return false, nil
	}
	return DeadlinePassed(value, s.now()), nil
}

func (s *TopicService) studentProfile(actor *models.User) (*models.Student, error) {
	if actor == nil || actor.Role != models.RoleStudent {
		return nil, ErrForbidden
	}
	profile, err := s.Store.GetStudentByUserID(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("load student profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNoStudentProfile
	}
	return profile, nil
}

// authoredTopic loads a topic the actor wrote. Order of checks: role, existence, ownership.
func (s *TopicService) authoredTopic(actor *models.User, id uint) (*models.Topic, error) {
	if actor == nil || actor.Role != models.RoleTeacher {
		return nil, ErrForbidden
	}
	topic, err := s.loadTopic(id)
	if err != nil {
		return nil, err
	}
	if topic.TeacherID != actor.ID {
		return nil, ErrForbidden
	}
	return topic, nil
}

func (s *TopicService) loadTopic(id uint) (*models.Topic, error) {
	topic, err := s.Store.GetTopic(id)
	if err != nil {
		return nil, fmt.Errorf("load topic %d: %w", id, err)
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	return topic, nil
}

// commit runs a guarded write. When the write changed nothing the topic is
// re-read and the rule that now fails is reported.
func (s *TopicService) commit(id uint, write func() (bool, error), guard func(*models.Topic) error) (*models.Topic, error) {
	ok, err := write()
	if err != nil {
		return nil, fmt.Errorf("update topic %d: %w", id, err)
	}
	fresh, err := s.loadTopic(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		if gerr := guard(fresh); gerr != nil {
			return nil, gerr
		}
		return nil, ErrStateChanged
	}
	return fresh, nil
}

func (s *TopicService) CreateTopic(actor *models.User, in TopicInput) (*models.Topic, error) {
	if actor == nil || actor.Role != models.RoleTeacher {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !models.ValidWorkType(in.WorkType) {
		return nil, ErrInvalidWorkType
	}

	topic := &models.Topic{
		Title:       title,
		Description: optional(in.Description),
		WorkType:    in.WorkType,
		TeacherID:   actor.ID,
	}
	if err := s.Store.CreateTopic(topic); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return s.loadTopic(topic.ID)
}

// EditableTopic returns a topic for its author's edit form.
func (s *TopicService) EditableTopic(actor *models.User, id uint) (*models.Topic, error) {
	return s.authoredTopic(actor, id)
}

func (s *TopicService) EditTopic(actor *models.User, id uint, upd models.TopicUpdate) (*models.Topic, error) {
	topic, err := s.authoredTopic(actor, id)
	if err != nil {
		return nil, err
	}
	if upd.WorkType != nil && !models.ValidWorkType(*upd.WorkType) {
		return nil, ErrInvalidWorkType
	}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		upd.Title = &title
	}
	if upd.Empty() {
		return topic, nil
	}

	if err := s.Store.UpdateTopic(id, upd); err != nil {
		return nil, fmt.Errorf("update topic %d: %w", id, err)
	}
	return s.loadTopic(id)
}

func (s *TopicService) ClaimTopic(actor *models.User, id uint) (*models.Topic, error) {
	profile, err := s.studentProfile(actor)
	if err != nil {
		return nil, err
	}
	current, err := s.Store.GetStudentTopic(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("load student topic: %w", err)
	}
	if current != nil {
		return nil, ErrAlreadyAssigned
	}
	topic, err := s.loadTopic(id)
	if err != nil {
		return nil, err
	}
	if topic.Claimed() {
		return nil, ErrTopicTaken
	}

	ok, err := s.Store.AssignTopic(id, profile.ID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrAlreadyAssigned
	}
	return s.commit(id, func() (bool, error) { return ok, err }, func(t *models.Topic) error {
		if t.Claimed() {
			return ErrTopicTaken
		}
		return nil
	})
}

// UnclaimTopic releases the topic the student currently holds.
func (s *TopicService) UnclaimTopic(actor *models.User) (*models.Topic, error) {
	profile, err := s.studentProfile(actor)
	if err != nil {
		return nil, err
	}
	topic, err := s.Store.GetStudentTopic(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("load student topic: %w", err)
	}
	if topic == nil {
		return nil, ErrNoTopic
	}
	if topic.IsApproved {
		return nil, ErrTopicApproved
	}
	locked, err := s.DeadlineLocked(topic)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrDeadlinePassed
	}

	return s.commit(topic.ID, func() (bool, error) {
		return s.Store.UnassignTopic(topic.ID, profile.ID)
	}, func(t *models.Topic) error {
		if t.StudentID == nil || *t.StudentID != profile.ID {
			return ErrNoTopic
		}
		if t.IsApproved {
			return ErrTopicApproved
		}
		return nil
	})
}

func claimedNotApproved(t *models.Topic) error {
	switch t.State() {
	case models.StateUnclaimed:
		return ErrNotClaimed
	case models.StateApproved:
		return ErrAlreadyApproved
	}
	return nil
}

func (s *TopicService) ApproveTopic(actor *models.User, id uint) (*models.Topic, error) {
	topic, err := s.authoredTopic(actor, id)
	if err != nil {
		return nil, err
	}
	if err := claimedNotApproved(topic); err != nil {
		return nil, err
	}
	return s.commit(id, func() (bool, error) { return s.Store.ApproveTopic(id) }, claimedNotApproved)
}

// RejectTopic removes the claimant from a claimed topic. No deadline check.
func (s *TopicService) RejectTopic(actor *models.User, id uint) (*models.Topic, error) {
	topic, err := s.authoredTopic(actor, id)
	if err != nil {
		return nil, err
	}
	if err := claimedNotApproved(topic); err != nil {
		return nil, err
	}
	return s.commit(id, func() (bool, error) { return s.Store.RejectTopic(id) }, claimedNotApproved)
}

func (s *TopicService) UnapproveTopic(actor *models.User, id uint) (*models.Topic, error) {
	topic, err := s.authoredTopic(actor, id)
	if err != nil {
		return nil, err
	}
	approved := func(t *models.Topic) error {
		if t.State() != models.StateApproved {
			return ErrNotApproved
		}
		return nil
	}
	if err := approved(topic); err != nil {
		return nil, err
	}
	locked, err := s.DeadlineLocked(topic)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrDeadlinePassed
	}
	return s.commit(id, func() (bool, error) { return s.Store.UnapproveTopic(id) }, approved)
}

// TeacherTopics returns the actor's topics with the per-topic deadline flag.
func (s *TopicService) TeacherTopics(actor *models.User) ([]TopicView, error) {
	if actor == nil || actor.Role != models.RoleTeacher {
		return nil, ErrForbidden
	}
	topics, err := s.Store.ListTopicsByTeacher(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list teacher topics: %w", err)
	}
	deadline, ok, err := s.Settings.GetSetting(models.SettingVKRDeadline)
	if err != nil {
		return nil, fmt.Errorf("load deadline: %w", err)
	}
	passed := ok && DeadlinePassed(deadline, s.now())

	views := make([]TopicView, 0, len(topics))
	for _, topic := range topics {
		views = append(views, TopicView{
			Topic:          topic,
			DeadlinePassed: passed && topic.WorkType == models.WorkVKR,
		})
	}
	return views, nil
}

// StudentOverview returns every topic and the one the student holds (nil if none).
func (s *TopicService) StudentOverview(actor *models.User) ([]models.Topic, *models.Topic, error) {
	profile, err := s.studentProfile(actor)
	if err != nil {
		return nil, nil, err
	}
	all, err := s.Store.ListTopics(0, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("list topics: %w", err)
	}
	mine, err := s.Store.GetStudentTopic(profile.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load student topic: %w", err)
	}
	return all, mine, nil
}

func (s *TopicService) GetTopic(id uint) (*models.Topic, error) {
	return s.loadTopic(id)
}

// ListTopics returns one page of topics and the total count.
func (s *TopicService) ListTopics(page, pageSize int) ([]models.Topic, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	topics, err := s.Store.ListTopics((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list topics: %w", err)
	}
	total, err := s.Store.CountTopics()
	if err != nil {
		return nil, 0, fmt.Errorf("count topics: %w", err)
	}
	return topics, total, nil
}
