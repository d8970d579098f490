package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "tutorhub_backend/internals/features/users/auth/dto"
	authModel "tutorhub_backend/internals/features/users/auth/model"
	authService "tutorhub_backend/internals/features/users/auth/service"
	helper "tutorhub_backend/internals/helpers"
	"tutorhub_backend/internals/mailer"
)

type AuthController struct {
	Service  *authService.AuthService
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB, dispatcher mailer.Dispatcher) *AuthController {
	return &AuthController{
		Service:  authService.NewAuthService(db, dispatcher),
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctl.Service.Register(req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Account created", toUserResponse(user))
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	token, user, err := ctl.Service.Login(req, c.IP())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Login successful", authDTO.AuthResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authDTO.LoginGoogleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	token, user, err := ctl.Service.LoginGoogle(req.IDToken, c.IP())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Login successful", authDTO.AuthResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	if err := ctl.Service.Logout(helper.GetRawAccessToken(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Logged out", nil)
}

// Me returns the authenticated account from the verified token claims.
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user authModel.UserModel
	if err := ctl.Service.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.Success(c, "OK", toUserResponse(&user))
}

func toUserResponse(u *authModel.UserModel) authDTO.UserResponse {
	return authDTO.UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
