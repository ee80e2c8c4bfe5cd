package controllers

import (
	"coursework/backend/services"
	"coursework/backend/utils"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// Сообщения для ?error= и ?success= на странице кабинета
var errorMessages = map[string]string{
	"already_assigned":   "Вы уже записаны на другую тему.",
	"topic_taken":        "Эта тема уже занята.",
	"deadline_passed":    "Дедлайн прошел.",
	"no_topic":           "У вас нет темы.",
	"approved":           "Нельзя отписаться от утвержденной темы.",
	"already_approved":   "Тема уже утверждена.",
	"not_claimed":        "Тему еще никто не выбрал.",
	"not_approved":       "Тема не утверждена.",
	"state_changed":      "Тема была изменена, обновите страницу.",
	"topic_not_found":    "Тема не найдена.",
	"file_read_error":    "Ошибка чтения файла.",
	"invalid_date":       "Неверный формат даты.",
	"no_students_found":  "Студенты не найдены.",
	"no_teachers_found":  "Преподаватели не найдены.",
	"no_report_data":     "Нет данных для отчета.",
	"no_student_profile": "Профиль студента не найден.",
}

var successMessages = map[string]string{
	"students_uploaded": "Студенты успешно загружены.",
	"teachers_uploaded": "Преподаватели успешно загружены.",
	"deadline_set":      "Дедлайн установлен.",
}

func errorMessage(code string) string {
	if code == "" {
		return ""
	}
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Произошла ошибка."
}

func successMessage(code string) string {
	if code == "" {
		return ""
	}
	if msg, ok := successMessages[code]; ok {
		return msg
	}
	return "Операция выполнена."
}

func dashboardError(c *fiber.Ctx, code string) error {
	return c.Redirect("/dashboard?error="+url.QueryEscape(code), fiber.StatusFound)
}

// pageFailure maps a service failure on an HTML form to a response.
// Rule and not-found failures go back to the dashboard with a code.
func pageFailure(c *fiber.Ctx, err error) error {
	switch services.KindOf(err) {
	case services.KindAuthentication:
		return c.Redirect("/login?error=auth", fiber.StatusSeeOther)
	case services.KindAuthorization:
		return fiber.NewError(fiber.StatusForbidden, errorMessage(services.CodeOf(err)))
	case services.KindValidation:
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	case services.KindRule, services.KindNotFound:
		return dashboardError(c, services.CodeOf(err))
	default:
		return err
	}
}

func validationMessage(err error) string {
	switch services.CodeOf(err) {
	case services.ErrInvalidWorkType.Code:
		return "Неверный тип работы."
	case services.ErrEmptyTitle.Code:
		return "Название темы не может быть пустым."
	default:
		return errorMessage(services.CodeOf(err))
	}
}

// apiStatus maps failure kinds to HTTP statuses for the JSON API.
func apiStatus(kind services.Kind) int {
	switch kind {
	case services.KindAuthentication:
		return fiber.StatusUnauthorized
	case services.KindAuthorization:
		return fiber.StatusForbidden
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindRule:
		return fiber.StatusConflict
	case services.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// apiFailure renders a typed failure as a coded JSON error. Anything else is
// passed on to the app error handler.
func apiFailure(c *fiber.Ctx, err error) error {
	var e *services.Error
	if !errors.As(err, &e) {
		return err
	}
	return utils.CodedError(c, apiStatus(e.Kind), e.Code, e.Message)
}
