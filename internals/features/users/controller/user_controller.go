package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "kantorku_backend/internals/features/users/model"
	helper "kantorku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /users?q=&unit=
// Dipakai dropdown assignee: hanya pegawai aktif.
func (h *UserController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&userModel.UserModel{}).Where("user_is_active = ?", true)

	if v := strings.TrimSpace(c.Query("q")); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(user_nama) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}
	if v := strings.TrimSpace(c.Query("unit")); v != "" {
		q = q.Where("user_unit = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pegawai")
	}

	paging := helper.ResolvePaging(c, 50, 200)
	var rows []userModel.UserModel
	if err := q.Order("user_nama ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pegawai")
	}

	return helper.JsonList(c, "", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /users/:id
func (h *UserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var u userModel.UserModel
	if err := h.DB.Where("user_id = ?", id).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Pegawai tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pegawai")
	}
	return helper.JsonOK(c, "", u)
}
