package views

import (
	"coursework/backend/models"
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var FS embed.FS

var workTypeLabels = map[string]string{
	models.WorkCoursework:    "Курсовая работа",
	models.WorkVKR:           "ВКР",
	models.WorkVKRCoursework: "ВКР / курсовая работа",
}

// WorkTypeLabel returns the display name of a work type.
func WorkTypeLabel(workType string) string {
	if label, ok := workTypeLabels[workType]; ok {
		return label
	}
	return workType
}

// New создает движок шаблонов поверх встроенных файлов
func New() *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.AddFunc("workType", WorkTypeLabel)
	engine.AddFunc("workTypes", func() []string { return models.WorkTypes })
	return engine
}
