package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	masterModel "kantorku_backend/internals/features/office/master/model"
	masterService "kantorku_backend/internals/features/office/master/service"
	helper "kantorku_backend/internals/helpers"
)

type MasterController struct {
	Svc *masterService.MasterService
}

func NewMasterController(db *gorm.DB) *MasterController {
	return &MasterController{Svc: masterService.NewMasterService(db)}
}

var validateMaster = validator.New()

type masterItemRequest struct {
	Nama string `json:"nama" validate:"required,min=1,max=150"`
}

// GET /master
func (h *MasterController) ListKategori(c *fiber.Ctx) error {
	type kategoriInfo struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	}
	var out []kategoriInfo
	for _, k := range masterModel.Kategoris() {
		out = append(out, kategoriInfo{Key: k.Key, Label: k.Label})
	}
	return helper.JsonOK(c, "", out)
}

// GET /master/:kategori
func (h *MasterController) List(c *fiber.Ctx) error {
	items, err := h.Svc.List(strings.TrimSpace(c.Params("kategori")))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", items)
}

// POST /master/:kategori  (admin)
func (h *MasterController) Add(c *fiber.Ctx) error {
	var req masterItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateMaster.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.Svc.Add(strings.TrimSpace(c.Params("kategori")), req.Nama)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Nilai master data ditambahkan", item)
}

// PATCH /master/:kategori/:id  (admin)
func (h *MasterController) Rename(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req masterItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateMaster.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.Svc.Rename(strings.TrimSpace(c.Params("kategori")), id, req.Nama)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Nilai master data diganti, surat terkait ikut diperbarui", item)
}

// DELETE /master/:kategori/:id  (admin)
func (h *MasterController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := h.Svc.Delete(strings.TrimSpace(c.Params("kategori")), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Nilai master data dihapus", fiber.Map{"item_id": id})
}
