package server

import (
	"skillshare/internal/models"
	"skillshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlan handles POST /api/plans
func (s *Server) CreatePlan(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req service.PlanInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	plan, err := s.planService.Create(c.Context(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// GetPlans handles GET /api/plans
func (s *Server) GetPlans(c *fiber.Ctx) error {
	plans, err := s.planService.GetAll(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(plans)
}

// GetPlan handles GET /api/plans/:id
func (s *Server) GetPlan(c *fiber.Ctx) error {
	plan, err := s.planService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(plan)
}

// GetUserPlans handles GET /api/users/:id/plans
func (s *Server) GetUserPlans(c *fiber.Ctx) error {
	plans, err := s.planService.GetByOwner(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(plans)
}

// UpdatePlan handles PUT /api/plans/:id
func (s *Server) UpdatePlan(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req service.PlanInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	plan, err := s.planService.Update(c.Context(), userID, c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(plan)
}

// DeletePlan handles DELETE /api/plans/:id
func (s *Server) DeletePlan(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := s.planService.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FollowPlan handles POST /api/plans/:id/follow
func (s *Server) FollowPlan(c *fiber.Ctx) error {
	userID := currentUserID(c)

	plan, err := s.planService.Follow(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(plan)
}

// UnfollowPlan handles DELETE /api/plans/:id/follow
func (s *Server) UnfollowPlan(c *fiber.Ctx) error {
	userID := currentUserID(c)

	plan, err := s.planService.Unfollow(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(plan)
}
