package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

// LeadHandler takes website submissions: client leads and contact messages.
type LeadHandler struct {
	DB *gorm.DB
}

func NewLeadHandler(db *gorm.DB) *LeadHandler {
	return &LeadHandler{DB: db}
}

const (
	clientNotFound  = "Client not found"
	contactNotFound = "Contact not found"
	clientExists    = "Client with this email already exists"
)

type ClientLeadReq struct {
	Name     string   `json:"name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Company  string   `json:"company"`
	Phone    string   `json:"phone" validate:"required,min=6,max=30"`
	Services []string `json:"services" validate:"required,min=1"`
	Message  string   `json:"message"`
}

func (h *LeadHandler) CreateClient(c *fiber.Ctx) error {
	var req ClientLeadReq
	if err := bind(c, &req); err != nil {
		return err
	}
	lead := models.ClientLead{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Company:  req.Company,
		Phone:    strings.TrimSpace(req.Phone),
		Services: req.Services,
		Message:  req.Message,
	}

	var count int64
	if err := h.DB.Model(&models.ClientLead{}).Where("email = ?", lead.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("check client email: %w", err)
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, clientExists)
	}
	if err := h.DB.Create(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusBadRequest, clientExists)
		}
		return fmt.Errorf("create client lead: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Client created successfully", "data": lead})
}

// ListClients is paginated, newest first.
func (h *LeadHandler) ListClients(c *fiber.Ctx) error {
	p := pagination(c, 10)

	var total int64
	if err := h.DB.Model(&models.ClientLead{}).Count(&total).Error; err != nil {
		return fmt.Errorf("count client leads: %w", err)
	}
	leads := []models.ClientLead{}
	if err := h.DB.Order("created_at DESC").Offset(p.Offset()).Limit(p.Limit).Find(&leads).Error; err != nil {
		return fmt.Errorf("list client leads: %w", err)
	}
	return c.JSON(paged(fiber.Map{"message": "Clients fetched successfully", "data": leads}, p, total))
}

func (h *LeadHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := pathID(c, "id", clientNotFound)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.ClientLead{}, id, clientNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Client deleted successfully"})
}

type ContactReq struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type ContactStatusReq struct {
	Status models.ContactStatus `json:"status" validate:"required,contactstatus"`
}

// CreateContact always starts the message in the "new" state.
func (h *LeadHandler) CreateContact(c *fiber.Ctx) error {
	var req ContactReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ct := models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactNew,
	}
	if err := h.DB.Create(&ct).Error; err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Contact created successfully", "contact": ct})
}

// ListContacts accepts an optional ?status filter.
func (h *LeadHandler) ListContacts(c *fiber.Ctx) error {
	contacts := []models.Contact{}
	q := h.DB.Order("created_at DESC")
	if s := models.ContactStatus(c.Query("status")); s != "" {
		q = q.Where("status = ?", s)
	}
	if err := q.Find(&contacts).Error; err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Contacts fetched successfully", "contacts": contacts})
}

func (h *LeadHandler) UpdateContactStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id", contactNotFound)
	if err != nil {
		return err
	}
	var req ContactStatusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var ct models.Contact
	if err := first(h.DB, &ct, id, contactNotFound); err != nil {
		return err
	}

	ct.Status = req.Status
	if err := h.DB.Save(&ct).Error; err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Contact status updated successfully", "contact": ct})
}

func (h *LeadHandler) DeleteContact(c *fiber.Ctx) error {
	id, err := pathID(c, "id", contactNotFound)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Contact{}, id, contactNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Contact deleted successfully"})
}
