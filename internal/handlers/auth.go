package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/utils"
)

const RefreshCookie = "refreshToken"

type AuthHandler struct {
	DB     *gorm.DB
	Tokens *utils.TokenService
	// Secure is false only in development.
	Secure bool
}

type RegisterReq struct {
	Name     string      `json:"name" validate:"required,min=3"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role" validate:"omitempty,role"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, name, value string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
		MaxAge:   int(maxAge.Seconds()),
	})
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// issueSession mints both tokens, stores the refresh token on the account
// and sets both cookies. The previous refresh token stops working.
func (h *AuthHandler) issueSession(c *fiber.Ctx, u *models.Account) error {
	access, err := h.Tokens.IssueAccessToken(u.ID.String(), string(u.Role))
	if err != nil {
		return err
	}
	refresh, err := h.Tokens.IssueRefreshToken(u.ID.String())
	if err != nil {
		return err
	}

	if err := h.DB.WithContext(c.UserContext()).
		Model(&models.Account{}).
		Where("id = ?", u.ID).
		UpdateColumn("refresh_token", refresh).Error; err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	u.RefreshToken = &refresh

	h.setCookie(c, middleware.AccessCookie, access, h.Tokens.AccessTTL())
	h.setCookie(c, RefreshCookie, refresh, h.Tokens.RefreshTTL())
	return nil
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := bind(c, &req); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := req.Role
	if role == "" {
		role = models.RoleClient
	}

	var existing models.Account
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup account by email: %w", err)
	}

	pw, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u := models.Account{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: pw,
		Role:     role,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		// lost a race against another registration with the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusBadRequest, "User already exists")
		}
		return fmt.Errorf("create account: %w", err)
	}

	if err := h.issueSession(c, &u); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Client created successfully",
		"user":    u.Public(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := bind(c, &req); err != nil {
		return err
	}

	var u models.Account
	err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return fmt.Errorf("lookup account by email: %w", err)
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Password is incorrect")
	}

	if err := h.issueSession(c, &u); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"role":    u.Role,
		"user":    u.Public(),
	})
}

// Refresh issues a new access token. The refresh token itself is not rotated.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	presented := c.Cookies(RefreshCookie)
	claims, err := h.Tokens.ParseRefreshToken(presented)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var u models.Account
	err = h.DB.First(&u, "id = ?", claims.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("load account for refresh: %w", err)
	}
	if u.RefreshToken == nil || *u.RefreshToken != presented {
		return fiber.ErrUnauthorized
	}

	access, err := h.Tokens.IssueAccessToken(u.ID.String(), string(u.Role))
	if err != nil {
		return err
	}
	h.setCookie(c, middleware.AccessCookie, access, h.Tokens.AccessTTL())

	return c.JSON(fiber.Map{"message": "Token refreshed"})
}

// Logout always clears the cookies. When the refresh cookie still matches the
// stored one, the stored token is cleared too so it cannot be replayed.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	presented := c.Cookies(RefreshCookie)
	if claims, err := h.Tokens.ParseRefreshToken(presented); err == nil {
		if err := h.DB.WithContext(c.UserContext()).
			Model(&models.Account{}).
			Where("id = ? AND refresh_token = ?", claims.UserID, presented).
			UpdateColumn("refresh_token", nil).Error; err != nil {
			return fmt.Errorf("clear refresh token: %w", err)
		}
	}

	h.clearCookie(c, middleware.AccessCookie)
	h.clearCookie(c, RefreshCookie)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// Me answers both /auth/me and /profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, ok := middleware.AccountID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var u models.Account
	err := h.DB.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	return c.JSON(fiber.Map{
		"message": "Your profile",
		"user":    u.Public(),
	})
}
