package service

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutorhub_backend/internals/configs"
	authDTO "tutorhub_backend/internals/features/users/auth/dto"
	authModel "tutorhub_backend/internals/features/users/auth/model"
	"tutorhub_backend/internals/mailer"
)

const accessTTLDefault = 24 * time.Hour

type AuthService struct {
	DB         *gorm.DB
	Dispatcher mailer.Dispatcher
}

func NewAuthService(db *gorm.DB, dispatcher mailer.Dispatcher) *AuthService {
	return &AuthService{DB: db, Dispatcher: dispatcher}
}

/* ==========================
   Register / Login
========================== */

func (s *AuthService) Register(req authDTO.RegisterRequest) (*authModel.UserModel, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := authModel.UserModel{
		UserName: strings.TrimSpace(req.UserName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}
		log.Println("[ERROR] register:", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create account")
	}
	return &user, nil
}

// Login verifies credentials and issues an access token. A best-effort login
// notification goes out after the credentials check; it never blocks the
// response.
func (s *AuthService) Login(req authDTO.LoginRequest, clientIP string) (string, *authModel.UserModel, error) {
	var user authModel.UserModel
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fiber.NewError(fiber.StatusUnauthorized, "Email or password is incorrect")
	}
	if err != nil {
		log.Println("[ERROR] login lookup:", err)
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "Something went wrong, please try again")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return "", nil, fiber.NewError(fiber.StatusUnauthorized, "Email or password is incorrect")
	}
	if !user.IsActive {
		return "", nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}

	token, err := s.issueAccessToken(&user)
	if err != nil {
		return "", nil, err
	}

	if s.Dispatcher != nil {
		s.Dispatcher.Notify(mailer.KindLogin, user.Email, mailer.Fields{
			"name": user.UserName,
			"ip":   clientIP,
			"time": time.Now().UTC().Format(time.RFC1123),
		})
	}

	return token, &user, nil
}

// LoginGoogle verifies a Google ID token and signs the matching account in,
// creating it on first login.
func (s *AuthService) LoginGoogle(idToken, clientIP string) (string, *authModel.UserModel, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return "", nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google token")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	var user authModel.UserModel
	err = s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub := claimSet.Sub
		user = authModel.UserModel{
			UserName: firstNonEmpty(claimSet.Name, email),
			Email:    email,
			Password: "-", // google-only account, password login disabled
			GoogleID: &sub,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			log.Println("[ERROR] google register:", err)
			return "", nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create account")
		}
	} else if err != nil {
		log.Println("[ERROR] google login lookup:", err)
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "Something went wrong, please try again")
	}

	if !user.IsActive {
		return "", nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}

	token, err := s.issueAccessToken(&user)
	if err != nil {
		return "", nil, err
	}

	if s.Dispatcher != nil {
		s.Dispatcher.Notify(mailer.KindLogin, user.Email, mailer.Fields{
			"name": user.UserName,
			"ip":   clientIP,
			"time": time.Now().UTC().Format(time.RFC1123),
		})
	}

	return token, &user, nil
}

/* ==========================
   Logout
========================== */

func (s *AuthService) Logout(rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No token provided")
	}
	entry := authModel.TokenBlacklist{
		Token:     rawToken,
		ExpiredAt: time.Now().Add(accessTTLDefault),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Println("[ERROR] blacklist insert:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to log out")
	}
	return nil
}

/* ==========================
   Token issuing
========================== */

func (s *AuthService) issueAccessToken(user *authModel.UserModel) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Println("[ERROR] sign token:", err)
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}
	return signed, nil
}

/* ==========================
   Small helpers
========================== */

func isUniqueViolation(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
