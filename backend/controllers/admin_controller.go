package controllers

import (
	"coursework/backend/middleware"
	"coursework/backend/models"
	"coursework/backend/services"
	"coursework/backend/utils"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
)

type AdminController struct {
	Admin  *services.AdminService
	Topics *services.TopicService
	Logger *log.Logger
}

func NewAdminController(admin *services.AdminService, topics *services.TopicService, logger *log.Logger) *AdminController {
	if logger == nil {
		logger = utils.DiscardLogger()
	}
	return &AdminController{Admin: admin, Topics: topics, Logger: logger}
}

type importFunc func(*models.User, string, io.Reader) (services.ImportResult, error)

func (ac *AdminController) upload(c *fiber.Ctx, run importFunc, success string) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return dashboardError(c, services.ErrFileRead.Code)
	}
	f, err := fh.Open()
	if err != nil {
		return dashboardError(c, services.ErrFileRead.Code)
	}
	defer f.Close()

	if _, err := run(middleware.CurrentUser(c), fh.Filename, f); err != nil {
		if services.IsBatchRejected(err) {
			ac.Logger.Printf("upload %s rejected: %v", fh.Filename, err)
			return dashboardError(c, services.ErrFileRead.Code)
		}
		return pageFailure(c, err)
	}
	return c.Redirect("/dashboard?success="+success, fiber.StatusFound)
}

// UploadStudents загружает студентов из CSV/XLSX
func (ac *AdminController) UploadStudents(c *fiber.Ctx) error {
	return ac.upload(c, ac.Admin.ImportStudents, "students_uploaded")
}

// UploadTeachers загружает преподавателей из CSV/XLSX
func (ac *AdminController) UploadTeachers(c *fiber.Ctx) error {
	return ac.upload(c, ac.Admin.ImportTeachers, "teachers_uploaded")
}

func (ac *AdminController) SetDeadline(c *fiber.Ctx) error {
	if err := ac.Topics.SetDeadline(middleware.CurrentUser(c), c.FormValue("deadline")); err != nil {
		if services.KindOf(err) == services.KindValidation {
			return dashboardError(c, services.CodeOf(err))
		}
		return pageFailure(c, err)
	}
	return c.Redirect("/dashboard?success=deadline_set", fiber.StatusFound)
}

// DownloadReport отдает Excel-отчет по всем темам
func (ac *AdminController) DownloadReport(c *fiber.Ctx) error {
	data, err := ac.Admin.TopicReport(middleware.CurrentUser(c))
	if err != nil {
		if services.KindOf(err) == services.KindNotFound {
			return c.Status(fiber.StatusNotFound).SendString(errorMessage(services.CodeOf(err)))
		}
		return pageFailure(c, err)
	}
	return utils.SendXLSX(c, "coursework_report.xlsx", data)
}

func (ac *AdminController) resetPasswords(c *fiber.Ctx, role models.Role, filename, emptyCode string) error {
	_, data, err := ac.Admin.ResetPasswords(middleware.CurrentUser(c), role)
	if err != nil {
		if services.KindOf(err) == services.KindNotFound {
			return dashboardError(c, emptyCode)
		}
		return pageFailure(c, err)
	}
	return utils.SendXLSX(c, filename, data)
}

func (ac *AdminController) ResetStudentPasswords(c *fiber.Ctx) error {
	return ac.resetPasswords(c, models.RoleStudent, "students_new_credentials.xlsx", "no_students_found")
}

func (ac *AdminController) ResetTeacherPasswords(c *fiber.Ctx) error {
	return ac.resetPasswords(c, models.RoleTeacher, "teachers_new_credentials.xlsx", "no_teachers_found")
}
