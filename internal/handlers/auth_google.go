package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOAuthHandler signs clients in with Google and hands out the same
// cookie pair as a password login.
type GoogleOAuthHandler struct {
	Auth            *AuthHandler
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func (h *GoogleOAuthHandler) enabled() bool {
	return h.GoogleClientID != ""
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) tempCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Auth.Secure,
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	if !h.enabled() {
		return fiber.ErrNotFound
	}

	next := c.Query("next", "/")
	st := randomState(32)
	h.tempCookie(c, "oauth_state", st, 10*60)
	h.tempCookie(c, "oauth_next", next, 10*60)

	return c.Redirect(h.oauthCfg().AuthCodeURL(st), http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if !h.enabled() {
		return fiber.ErrNotFound
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing code/state")
	}
	if st := c.Cookies("oauth_state"); st == "" || st != state {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid state")
	}
	next := c.Cookies("oauth_next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}

	tok, err := h.oauthCfg().Exchange(c.UserContext(), code)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to exchange code")
	}

	resp, err := h.oauthCfg().Client(c.UserContext(), tok).Get(googleUserInfoURL)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to fetch userinfo")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to decode userinfo")
	}

	u, err := h.upsertClient(gu)
	if err != nil {
		return err
	}
	if err := h.Auth.issueSession(c, u); err != nil {
		return err
	}

	h.tempCookie(c, "oauth_state", "", -1)
	h.tempCookie(c, "oauth_next", "", -1)
	return c.Redirect(h.FrontendBaseURL+next, http.StatusTemporaryRedirect)
}

// upsertClient finds the account by email or creates a client account with an
// unusable random password.
func (h *GoogleOAuthHandler) upsertClient(gu googleUserInfo) (*models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(gu.Email))
	if email == "" || !gu.VerifiedEmail {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Email not verified by Google")
	}

	var u models.Account
	err := h.Auth.DB.Where("email = ?", email).First(&u).Error
	if err == nil {
		if u.ImageURL == "" && gu.Picture != "" {
			u.ImageURL = gu.Picture
			if err := h.Auth.DB.Model(&u).UpdateColumn("image_url", gu.Picture).Error; err != nil {
				return nil, fmt.Errorf("update google picture: %w", err)
			}
		}
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup google account: %w", err)
	}

	hashed, err := utils.HashPassword(randomState(24))
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}
	name := strings.TrimSpace(gu.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	u = models.Account{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleClient,
		ImageURL: gu.Picture,
	}
	if err := h.Auth.DB.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("create google account: %w", err)
	}
	return &u, nil
}
