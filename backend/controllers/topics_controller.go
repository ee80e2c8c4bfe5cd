package controllers

import (
	"coursework/backend/middleware"
	"coursework/backend/models"
	"coursework/backend/services"
	"coursework/backend/utils"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type TopicsController struct {
	Topics *services.TopicService
}

func NewTopicsController(topics *services.TopicService) *TopicsController {
	return &TopicsController{Topics: topics}
}

var errBadTopicID = errors.New("invalid topic id")

func topicID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errBadTopicID
	}
	return uint(id), nil
}

// transition выполняет переход над темой из URL и возвращает в кабинет
func (tc *TopicsController) transition(c *fiber.Ctx, op func(*models.User, uint) (*models.Topic, error)) error {
	id, err := topicID(c)
	if err != nil {
		return dashboardError(c, services.ErrTopicNotFound.Code)
	}
	if _, err := op(middleware.CurrentUser(c), id); err != nil {
		return pageFailure(c, err)
	}
	return c.Redirect("/dashboard", fiber.StatusFound)
}

// ---------- HTML ----------

func (tc *TopicsController) CreatePage(c *fiber.Ctx) error {
	return c.Render("create_topic", fiber.Map{
		"Title": "Новая тема",
		"User":  middleware.CurrentUser(c),
	})
}

func (tc *TopicsController) Create(c *fiber.Ctx) error {
	var input services.TopicInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректные данные формы.")
	}
	if _, err := tc.Topics.CreateTopic(middleware.CurrentUser(c), input); err != nil {
		return pageFailure(c, err)
	}
	return c.Redirect("/dashboard", fiber.StatusFound)
}

func (tc *TopicsController) EditPage(c *fiber.Ctx) error {
	id, err := topicID(c)
	if err != nil {
		return fiber.ErrForbidden
	}
	user := middleware.CurrentUser(c)
	topic, err := tc.Topics.EditableTopic(user, id)
	if err != nil {
		// чужая или несуществующая тема: доступ запрещен
		if services.KindOf(err) == services.KindNotFound {
			return fiber.NewError(fiber.StatusForbidden, "Доступ запрещен")
		}
		return pageFailure(c, err)
	}
	return c.Render("edit_topic", fiber.Map{
		"Title": "Редактирование темы",
		"User":  user,
		"Topic": topic,
	})
}

// Edit заменяет название, описание и тип работы значениями из формы
func (tc *TopicsController) Edit(c *fiber.Ctx) error {
	id, err := topicID(c)
	if err != nil {
		return fiber.ErrForbidden
	}
	var input services.TopicInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректные данные формы.")
	}
	upd := models.TopicUpdate{
		Title:       &input.Title,
		Description: &input.Description,
		WorkType:    &input.WorkType,
	}
	if _, err := tc.Topics.EditTopic(middleware.CurrentUser(c), id, upd); err != nil {
		if services.KindOf(err) == services.KindNotFound {
			return fiber.NewError(fiber.StatusForbidden, "Действие запрещено")
		}
		return pageFailure(c, err)
	}
	return c.Redirect("/dashboard", fiber.StatusFound)
}

func (tc *TopicsController) Claim(c *fiber.Ctx) error {
	return tc.transition(c, tc.Topics.ClaimTopic)
}

func (tc *TopicsController) Unclaim(c *fiber.Ctx) error {
	if _, err := tc.Topics.UnclaimTopic(middleware.CurrentUser(c)); err != nil {
		return pageFailure(c, err)
	}
	return c.Redirect("/dashboard", fiber.StatusFound)
}

func (tc *TopicsController) Approve(c *fiber.Ctx) error {
	return tc.transition(c, tc.Topics.ApproveTopic)
}

func (tc *TopicsController) Unapprove(c *fiber.Ctx) error {
	return tc.transition(c, tc.Topics.UnapproveTopic)
}

func (tc *TopicsController) Reject(c *fiber.Ctx) error {
	return tc.transition(c, tc.Topics.RejectTopic)
}

// ---------- JSON API ----------

// [+] List godoc
// @Summary List topics
// @Description Paginated list of all topics with author and claimant
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.PaginatedResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/topics [get]
func (tc *TopicsController) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	topics, total, err := tc.Topics.ListTopics(page, pageSize)
	if err != nil {
		return err
	}
	return utils.Paginate(c, topics, total, page, pageSize)
}

// [+] Get godoc
// @Summary Get topic
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/topics/{id} [get]
func (tc *TopicsController) Get(c *fiber.Ctx) error {
	id, err := topicID(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	topic, err := tc.Topics.GetTopic(id)
	if err != nil {
		return apiFailure(c, err)
	}
	return utils.Success(c, fiber.StatusOK, topic)
}

// [+] APICreate godoc
// @Summary Create topic
// @Description Teacher publishes a new unclaimed topic
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param topic body services.TopicInput true "Topic"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/topics [post]
func (tc *TopicsController) APICreate(c *fiber.Ctx) error {
	var input services.TopicInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	topic, err := tc.Topics.CreateTopic(middleware.CurrentUser(c), input)
	if err != nil {
		return apiFailure(c, err)
	}
	return utils.Created(c, topic)
}

// [+] APIEdit godoc
// @Summary Edit topic
// @Description Partial update; omitted fields keep their values
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param topic body models.TopicUpdate true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/topics/{id} [patch]
func (tc *TopicsController) APIEdit(c *fiber.Ctx) error {
	id, err := topicID(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var upd models.TopicUpdate
	if err := c.BodyParser(&upd); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	topic, err := tc.Topics.EditTopic(middleware.CurrentUser(c), id, upd)
	if err != nil {
		return apiFailure(c, err)
	}
	return utils.Success(c, fiber.StatusOK, topic)
}

func (tc *TopicsController) apiTransition(c *fiber.Ctx, op func(*models.User, uint) (*models.Topic, error)) error {
	id, err := topicID(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	topic, err := op(middleware.CurrentUser(c), id)
	if err != nil {
		return apiFailure(c, err)
	}
	return utils.Success(c, fiber.StatusOK, topic)
}

// [+] APIClaim godoc
// @Summary Claim topic
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/topics/{id}/claim [post]
func (tc *TopicsController) APIClaim(c *fiber.Ctx) error {
	return tc.apiTransition(c, tc.Topics.ClaimTopic)
}

// [+] APIUnclaim godoc
// @Summary Release own topic
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/topics/unclaim [post]
func (tc *TopicsController) APIUnclaim(c *fiber.Ctx) error {
	topic, err := tc.Topics.UnclaimTopic(middleware.CurrentUser(c))
	if err != nil {
		return apiFailure(c, err)
	}
	return utils.Success(c, fiber.StatusOK, topic)
}

// [+] APIApprove godoc
// @Summary Approve claim
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/topics/{id}/approve [post]
func (tc *TopicsController) APIApprove(c *fiber.Ctx) error {
	return tc.apiTransition(c, tc.Topics.ApproveTopic)
}

// [+] APIUnapprove godoc
// @Summary Withdraw approval
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/topics/{id}/unapprove [post]
func (tc *TopicsController) APIUnapprove(c *fiber.Ctx) error {
	return tc.apiTransition(c, tc.Topics.UnapproveTopic)
}

// [+] APIReject godoc
// @Summary Reject claim
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/topics/{id}/reject [post]
func (tc *TopicsController) APIReject(c *fiber.Ctx) error {
	return tc.apiTransition(c, tc.Topics.RejectTopic)
}
