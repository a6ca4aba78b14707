package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/course-marketplace/internal/api/dto"
	"github.com/spec-kit/course-marketplace/internal/auth"
	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/service"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

// CoursesHandler exposes course CRUD and purchase endpoints.
type CoursesHandler struct {
	courses   *service.CourseService
	purchases *service.PurchaseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courseService *service.CourseService, purchaseService *service.PurchaseService) *CoursesHandler {
	return &CoursesHandler{courses: courseService, purchases: purchaseService}
}

// Create handles POST /course/create. Expects a multipart form with the
// course fields and an "image" file.
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	adminID, ok := auth.AdminIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	priceRaw := c.FormValue("price")
	category := c.FormValue("category")
	level := c.FormValue("level")
	if title == "" || description == "" || priceRaw == "" || category == "" || level == "" {
		return apperrors.NewValidationError("All fields are required", nil)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(priceRaw), 64)
	if err != nil {
		return apperrors.NewValidationError("Price must be a number", nil)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("No file uploaded", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("No file uploaded", nil)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	course, err := h.courses.Create(c.Context(), adminID, service.CourseCreateInput{
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
		Level:       domain.CourseLevel(level),
	}, service.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Course created successfully",
		"data":    dto.NewCourseResponse(course),
	})
}

// Update handles PUT /course/update/:courseId.
func (h *CoursesHandler) Update(c *fiber.Ctx) error {
	adminID, ok := auth.AdminIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	var req dto.CourseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	course, err := h.courses.Update(c.Context(), adminID, c.Params("courseId"), service.CourseUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       domain.CourseImage{PublicID: req.Image.PublicID, URL: req.Image.URL},
		Category:    req.Category,
		Level:       req.Level,
		IsPublished: req.IsPublished,
		Lectures:    req.Lectures,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"data":    dto.NewCourseResponse(course),
	})
}

// Delete handles DELETE /course/delete/:courseId.
func (h *CoursesHandler) Delete(c *fiber.Ctx) error {
	adminID, ok := auth.AdminIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	if err := h.courses.Delete(c.Context(), adminID, c.Params("courseId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}

// List handles GET /course/courses. Public.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, dto.NewCourseResponse(&courses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Detail handles GET /course/:courseId. Public.
func (h *CoursesHandler) Detail(c *fiber.Ctx) error {
	course, err := h.courses.Get(c.Context(), c.Params("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCourseResponse(course)})
}

// Buy handles POST /course/buy/:courseId.
func (h *CoursesHandler) Buy(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	// Copy the route param: fiber reuses the request buffer backing it, and
	// the purchase record outlives this request.
	purchase, err := h.purchases.Buy(c.Context(), userID, utils.CopyString(c.Params("courseId")))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Course purchased successfully",
		"data":    dto.NewPurchaseResponse(purchase),
	})
}
