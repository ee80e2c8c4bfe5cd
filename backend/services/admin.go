package services

import (
	"coursework/backend/models"
	"coursework/backend/utils"
	"errors"
	"fmt"
	"io"
	"log"
)

// AccountStore covers the account operations used by imports and password resets.
type AccountStore interface {
	GetUserByUsername(username string) (*models.User, error)
	ListUsersByRole(role models.Role) ([]models.User, error)
	CreateStudentAccount(user *models.User, profile *models.Student) (bool, error)
	CreateTeacherAccount(user *models.User, profile *models.Teacher) (bool, error)
	UpdatePasswordHash(userID uint, hash string) error
	ListTopics(offset, limit int) ([]models.Topic, error)
}

type AdminService struct {
	Store  AccountStore
	Logger *log.Logger
}

func NewAdminService(store AccountStore, logger *log.Logger) *AdminService {
	if logger == nil {
		logger = utils.DiscardLogger()
	}
	return &AdminService{Store: store, Logger: logger}
}

type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Credential: новый пароль, выданный при сбросе
type Credential struct {
	FullName string
	Username string
	Password string
}

var (
	studentColumns = []string{"full_name", "email", "group"}
	teacherColumns = []string{"full_name", "email", "position"}

	reportHeader = []string{
		"Тип работы",
		"ФИО преподавателя",
		"Тема от преподавателя",
		"Описание темы",
		"ФИО студента",
		"Текущий статус для студента",
		"Статус от преподавателя",
		"Корректировка темы",
	}
	credentialsHeader = []string{"ФИО", "Логин (email)", "Новый пароль"}
)

const (
	StatusTopicClaimed   = "Тема закреплена"
	StatusTopicFree      = "Тема свободна"
	StatusAwaitsApproval = "Ожидает согласования"
	StatusApproved       = "Студент и тема согласованы"
)

func requireAdmin(actor *models.User) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// readBatch parses the upload and checks its header before anything is written.
func readBatch(filename string, r io.Reader, required []string) (*utils.Table, error) {
	table, err := utils.ReadTable(filename, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	if missing := table.HasColumns(required...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingColumns, missing)
	}
	return table, nil
}

// importRows creates an account for every row whose login is new. create
// receives the prepared account and reports whether it was inserted.
func (s *AdminService) importRows(table *utils.Table, role models.Role, create func(row map[string]string, user *models.User) (bool, error)) (ImportResult, error) {
	var result ImportResult
	for i, row := range table.Rows {
		login := row["email"]
		if login == "" {
			result.Skipped++
			continue
		}
		existing, err := s.Store.GetUserByUsername(login)
		if err != nil {
			return result, fmt.Errorf("lookup %s: %w", login, err)
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		password, err := utils.GeneratePassword(12)
		if err != nil {
			return result, fmt.Errorf("generate password: %w", err)
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return result, fmt.Errorf("hash password: %w", err)
		}
		user := &models.User{
			FullName:     row["full_name"],
			Username:     login,
			PasswordHash: hash,
			Role:         role,
		}

		created, err := create(row, user)
		switch {
		case err != nil:
			s.Logger.Printf("import %s row %d (%s): %v", role, i+2, login, err)
			result.Failed++
		case !created:
			result.Skipped++
		default:
			result.Created++
		}
	}
	s.Logger.Printf("import %s: created=%d skipped=%d failed=%d", role, result.Created, result.Skipped, result.Failed)
	return result, nil
}

// ImportStudents reads full_name, email, group and optional profile columns.
func (s *AdminService) ImportStudents(actor *models.User, filename string, r io.Reader) (ImportResult, error) {
	if err := requireAdmin(actor); err != nil {
		return ImportResult{}, err
	}
	table, err := readBatch(filename, r, studentColumns)
	if err != nil {
		return ImportResult{}, err
	}
	return s.importRows(table, models.RoleStudent, func(row map[string]string, user *models.User) (bool, error) {
		return s.Store.CreateStudentAccount(user, &models.Student{
			Group:   row["group"],
			Profile: optional(row["profile"]),
		})
	})
}

// ImportTeachers reads full_name, email, position and optional degree, title columns.
func (s *AdminService) ImportTeachers(actor *models.User, filename string, r io.Reader) (ImportResult, error) {
	if err := requireAdmin(actor); err != nil {
		return ImportResult{}, err
	}
	table, err := readBatch(filename, r, teacherColumns)
	if err != nil {
		return ImportResult{}, err
	}
	return s.importRows(table, models.RoleTeacher, func(row map[string]string, user *models.User) (bool, error) {
		return s.Store.CreateTeacherAccount(user, &models.Teacher{
			Position: row["position"],
			Degree:   optional(row["degree"]),
			Title:    optional(row["title"]),
		})
	})
}

// ReportRow flattens a topic into the report columns.
func ReportRow(topic *models.Topic) []string {
	studentStatus := StatusTopicFree
	teacherStatus := ""
	if topic.Claimed() {
		studentStatus = StatusTopicClaimed
		teacherStatus = StatusAwaitsApproval
		if topic.IsApproved {
			teacherStatus = StatusApproved
		}
	}
	return []string{
		topic.WorkType,
		topic.TeacherName(),
		topic.Title,
		topic.DescriptionText(),
		topic.StudentName(),
		studentStatus,
		teacherStatus,
		"",
	}
}

// TopicReport builds the xlsx report over every topic.
func (s *AdminService) TopicReport(actor *models.User) ([]byte, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	topics, err := s.Store.ListTopics(0, 0)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	if len(topics) == 0 {
		return nil, ErrNoReportData
	}

	rows := make([][]string, 0, len(topics))
	for i := range topics {
		rows = append(rows, ReportRow(&topics[i]))
	}
	data, err := utils.WriteTable("Report", reportHeader, rows)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return data, nil
}

// ResetPasswords issues a new password to every account of role. The plaintext
// passwords exist only in the returned credentials and workbook.
func (s *AdminService) ResetPasswords(actor *models.User, role models.Role) ([]Credential, []byte, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}
	var sheet string
	switch role {
	case models.RoleStudent:
		sheet = "Student Credentials"
	case models.RoleTeacher:
		sheet = "Teacher Credentials"
	default:
		return nil, nil, ErrInvalidRole
	}

	users, err := s.Store.ListUsersByRole(role)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s accounts: %w", role, err)
	}
	if len(users) == 0 {
		return nil, nil, ErrNoUsersFound
	}

	creds := make([]Credential, 0, len(users))
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		password, err := utils.GeneratePassword(12)
		if err != nil {
			return nil, nil, fmt.Errorf("generate password: %w", err)
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.Store.UpdatePasswordHash(u.ID, hash); err != nil {
			return nil, nil, fmt.Errorf("update password for %s: %w", u.Username, err)
		}
		creds = append(creds, Credential{FullName: u.FullName, Username: u.Username, Password: password})
		rows = append(rows, []string{u.FullName, u.Username, password})
	}
	s.Logger.Printf("reset %d %s passwords", len(creds), role)

	data, err := utils.WriteTable(sheet, credentialsHeader, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("write credentials: %w", err)
	}
	return creds, data, nil
}

// IsBatchRejected reports whether err rejected an upload before any row was written.
func IsBatchRejected(err error) bool {
	return errors.Is(err, ErrFileRead) || errors.Is(err, ErrMissingColumns)
}
