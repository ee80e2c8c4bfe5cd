package controllers

import (
	"coursework/backend/config"
	"coursework/backend/middleware"
	"coursework/backend/services"
	"coursework/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Auth *services.AuthService
	Cfg  *config.Config
}

func NewAuthController(auth *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{Auth: auth, Cfg: cfg}
}

type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// tokenCookie: одинаковые атрибуты при входе и выходе, иначе браузер не заменит cookie
func tokenCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     utils.TokenCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func (ac *AuthController) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(tokenCookie(token, time.Now().Add(ac.Cfg.TokenTTL)))
}

// Home отображает главную страницу; пользователь показывается, если токен валиден
func (ac *AuthController) Home(c *fiber.Ctx) error {
	return c.Render("home", fiber.Map{
		"Title": "Главная",
		"User":  middleware.CurrentUser(c),
	})
}

func (ac *AuthController) LoginPage(c *fiber.Ctx) error {
	var msg string
	switch c.Query("error") {
	case "1":
		msg = "Неверный логин или пароль."
	case "auth":
		msg = "Требуется авторизация. Пожалуйста, войдите."
	}
	return c.Render("login", fiber.Map{
		"Title": "Вход",
		"Error": msg,
	})
}

// Login обрабатывает форму входа: токен кладется в cookie, затем редирект в кабинет
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Redirect("/login?error=1", fiber.StatusFound)
	}

	_, token, err := ac.Auth.Authenticate(input.Username, input.Password)
	if err != nil {
		if services.KindOf(err) == services.KindAuthentication {
			return c.Redirect("/login?error=1", fiber.StatusFound)
		}
		return err
	}

	ac.setTokenCookie(c, token)
	return c.Redirect("/dashboard", fiber.StatusFound)
}

// Logout only clears the cookie. The token itself stays valid until it expires.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(tokenCookie("", time.Now().Add(-time.Hour)))
	return c.Redirect("/", fiber.StatusFound)
}

// [+] APILogin godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/auth/login [post]
func (ac *AuthController) APILogin(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	user, token, err := ac.Auth.Authenticate(input.Username, input.Password)
	if err != nil {
		return apiFailure(c, err)
	}

	ac.setTokenCookie(c, token)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token":      token,
		"token_type": "bearer",
		"user":       user,
	})
}

// [+] Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/me [get]
func (ac *AuthController) Me(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, middleware.CurrentUser(c))
}
