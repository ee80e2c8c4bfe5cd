package controllers

import (
	"coursework/backend/middleware"
	"coursework/backend/models"
	"coursework/backend/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Topics *services.TopicService
}

func NewDashboardController(topics *services.TopicService) *DashboardController {
	return &DashboardController{Topics: topics}
}

// Dashboard отображает кабинет в зависимости от роли пользователя
func (dc *DashboardController) Dashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	deadline, err := dc.Topics.Deadline()
	if err != nil {
		return err
	}
	if deadline == "" {
		deadline = "не установлен"
	}

	data := fiber.Map{
		"Title":    "Кабинет",
		"User":     user,
		"Deadline": deadline,
		"Error":    errorMessage(c.Query("error")),
		"Success":  successMessage(c.Query("success")),
	}

	switch user.Role {
	case models.RoleAdmin:
		return c.Render("admin_dashboard", data)

	case models.RoleTeacher:
		topics, err := dc.Topics.TeacherTopics(user)
		if err != nil {
			return err
		}
		data["Topics"] = topics
		return c.Render("teacher_dashboard", data)

	case models.RoleStudent:
		all, mine, err := dc.Topics.StudentOverview(user)
		if err != nil {
			if services.KindOf(err) == services.KindAuthorization {
				return fiber.NewError(fiber.StatusForbidden, errorMessage(services.CodeOf(err)))
			}
			return err
		}
		data["Topics"] = all
		data["MyTopic"] = mine
		return c.Render("student_dashboard", data)
	}

	return fiber.ErrForbidden
}
