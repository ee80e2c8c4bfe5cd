package store

import (
	"coursework/backend/config"
	"coursework/backend/models"
	"coursework/backend/utils"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := utils.InitDB(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	s := New(db)
	require.NoError(t, s.Migrate())
	return s
}

func createTeacher(t *testing.T, s *Store, login string) *models.User {
	t.Helper()
	user := &models.User{FullName: "Teacher " + login, Username: login, PasswordHash: "x", Role: models.RoleTeacher}
	created, err := s.CreateTeacherAccount(user, &models.Teacher{Position: "доцент"})
	require.NoError(t, err)
	require.True(t, created)
	return user
}

func createStudent(t *testing.T, s *Store, login string) (*models.User, *models.Student) {
	t.Helper()
	user := &models.User{FullName: "Student " + login, Username: login, PasswordHash: "x", Role: models.RoleStudent}
	profile := &models.Student{Group: "ПИ-21"}
	created, err := s.CreateStudentAccount(user, profile)
	require.NoError(t, err)
	require.True(t, created)
	return user, profile
}

func createTopic(t *testing.T, s *Store, teacher *models.User, workType string) *models.Topic {
	t.Helper()
	topic := &models.Topic{Title: "Topic", WorkType: workType, TeacherID: teacher.ID}
	require.NoError(t, s.CreateTopic(topic))
	return topic
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)

	teacher := createTeacher(t, s, "t@example.com")
	student, profile := createStudent(t, s, "s@example.com")
	assert.NotZero(t, profile.ID)
	assert.Equal(t, student.ID, profile.UserID)

	found, err := s.GetUserByUsername("t@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, teacher.ID, found.ID)

	missing, err := s.GetUserByUsername("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byID, err := s.GetUserByID(student.ID)
	require.NoError(t, err)
	assert.Equal(t, "s@example.com", byID.Username)

	teachers, err := s.ListUsersByRole(models.RoleTeacher)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, teacher.ID, teachers[0].ID)

	all, err := s.ListUsers()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sp, err := s.GetStudentByUserID(student.ID)
	require.NoError(t, err)
	require.NotNil(t, sp)
	assert.Equal(t, "ПИ-21", sp.Group)

	tp, err := s.GetTeacherByUserID(teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.Equal(t, "доцент", tp.Position)

	none, err := s.GetStudentByUserID(teacher.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDuplicateLoginIsNotCreated(t *testing.T) {
	s := newTestStore(t)
	createStudent(t, s, "dup@example.com")

	user := &models.User{FullName: "Other", Username: "dup@example.com", PasswordHash: "x", Role: models.RoleStudent}
	created, err := s.CreateStudentAccount(user, &models.Student{Group: "X"})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = s.CreateUser(&models.User{FullName: "Admin", Username: "dup@example.com", PasswordHash: "x", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, created)

	var profiles int64
	require.NoError(t, s.DB.Model(&models.Student{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)
}

func TestUpdatePasswordHash(t *testing.T) {
	s := newTestStore(t)
	user, _ := createStudent(t, s, "p@example.com")

	require.NoError(t, s.UpdatePasswordHash(user.ID, "newhash"))
	reloaded, err := s.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", reloaded.PasswordHash)

	assert.ErrorIs(t, s.UpdatePasswordHash(9999, "h"), gorm.ErrRecordNotFound)
}

func TestCreateAndGetTopic(t *testing.T) {
	s := newTestStore(t)
	teacher := createTeacher(t, s, "t@example.com")

	desc := "D"
	topic := &models.Topic{Title: "T", Description: &desc, WorkType: models.WorkVKR, TeacherID: teacher.ID}
	require.NoError(t, s.CreateTopic(topic))

	got, err := s.GetTopic(topic.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "D", got.DescriptionText())
	assert.Nil(t, got.StudentID)
	assert.False(t, got.IsApproved)
	assert.Equal(t, teacher.ID, got.TeacherID)
	assert.Equal(t, teacher.FullName, got.TeacherName())

	missing, err := s.GetTopic(12345)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateTopicPartial(t *testing.T) {
	s := newTestStore(t)
	teacher := createTeacher(t, s, "t@example.com")
	topic := createTopic(t, s, teacher, models.WorkCoursework)

	title := "New title"
	require.NoError(t, s.UpdateTopic(topic.ID, models.TopicUpdate{Title: &title}))

	got, err := s.GetTopic(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, models.WorkCoursework, got.WorkType)
	assert.Nil(t, got.Description)

	desc := "Описание"
	require.NoError(t, s.UpdateTopic(topic.ID, models.TopicUpdate{Description: &desc}))
	got, err = s.GetTopic(topic.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Описание", *got.Description)

	empty := ""
	require.NoError(t, s.UpdateTopic(topic.ID, models.TopicUpdate{Description: &empty}))
	got, err = s.GetTopic(topic.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Equal(t, "New title", got.Title)

	assert.NoError(t, s.UpdateTopic(topic.ID, models.TopicUpdate{}))
	assert.ErrorIs(t, s.UpdateTopic(999, models.TopicUpdate{Title: &title}), gorm.ErrRecordNotFound)
}

func TestListTopics(t *testing.T) {
	s := newTestStore(t)
	t1 := createTeacher(t, s, "t1@example.com")
	t2 := createTeacher(t, s, "t2@example.com")
	_, profile := createStudent(t, s, "s@example.com")

	a := createTopic(t, s, t1, models.WorkCoursework)
	createTopic(t, s, t1, models.WorkVKR)
	createTopic(t, s, t2, models.WorkVKRCoursework)

	ok, err := s.AssignTopic(a.ID, profile.ID)
	require.NoError(t, err)
	require.True(t, ok)

	all, err := s.ListTopics(0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Student s@example.com", all[0].StudentName())
	assert.Equal(t, "Teacher t1@example.com", all[0].TeacherName())

	page, err := s.ListTopics(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, models.WorkVKR, page[0].WorkType)

	total, err := s.CountTopics()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	mine, err := s.ListTopicsByTeacher(t1.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	st, err := s.GetStudentTopic(profile.ID)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, a.ID, st.ID)
}

func TestAssignTopicGuards(t *testing.T) {
	s := newTestStore(t)
	teacher := createTeacher(t, s, "t@example.com")
	_, first := createStudent(t, s, "s1@example.com")
	_, second := createStudent(t, s, "s2@example.com")
	a := createTopic(t, s, teacher, models.WorkCoursework)
	b := createTopic(t, s, teacher, models.WorkCoursework)

	ok, err := s.AssignTopic(a.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// тема уже занята
	ok, err = s.AssignTopic(a.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// у студента уже есть тема: срабатывает уникальный индекс
	ok, err = s.AssignTopic(b.ID, first.ID)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.False(t, ok)

	got, err := s.GetTopic(a.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, *got.StudentID)
	got, err = s.GetTopic(b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StudentID)
}

func TestConcurrentAssignOneWinner(t *testing.T) {
	s := newTestStore(t)
	teacher := createTeacher(t, s, "t@example.com")
	topic := createTopic(t, s, teacher, models.WorkCoursework)

	var students []*models.Student
	for _, login := range []string{"a@x", "b@x", "c@x", "d@x"} {
		_, p := createStudent(t, s, login)
		students = append(students, p)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for _, p := range students {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			ok, err := s.AssignTopic(topic.ID, id)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(p.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestLifecycleWrites(t *testing.T) {
	s := newTestStore(t)
	teacher := createTeacher(t, s, "t@example.com")
	_, student := createStudent(t, s, "s@example.com")
	topic := createTopic(t, s, teacher, models.WorkVKR)

	// нельзя утвердить свободную тему
	ok, err := s.ApproveTopic(topic.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.AssignTopic(topic.ID, student.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.ApproveTopic(topic.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// утвержденную тему студент снять не может, преподаватель отклонить тоже
	ok, err = s.UnassignTopic(topic.ID, student.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.RejectTopic(topic.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.UnapproveTopic(topic.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.UnapproveTopic(topic.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.UnassignTopic(topic.ID, student.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.RejectTopic(topic.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetTopic(topic.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StudentID)
	assert.False(t, got.IsApproved)
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.GetSetting(models.SettingVKRDeadline)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetSetting(models.SettingVKRDeadline, "2024-01-01"))
	require.NoError(t, s.SetSetting(models.SettingVKRDeadline, "2024-06-30"))

	value, ok, err := s.GetSetting(models.SettingVKRDeadline)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2024-06-30", value)

	var count int64
	require.NoError(t, s.DB.Model(&models.SystemSetting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
