package api

import (
	"net/http"

	resdto "carpool-api/internal/handler/dto/response"
	"carpool-api/internal/handler/httperr"
	"carpool-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FleetHandler struct {
	fleetQueries queries.FleetQueries
}

func NewFleetHandler(fleetQueries queries.FleetQueries) *FleetHandler {
	return &FleetHandler{fleetQueries: fleetQueries}
}

// @Summary List cars of a branch
// @Description List the cars stationed at one branch
// @Tags cars
// @Produce json
// @Param branchId path string true "Branch ID"
// @Success 200 {array} resdto.CarResponse
// @Failure 400 {object} httperr.Response
// @Router /cars/branch/{branchId} [get]
func (h *FleetHandler) CarsByBranch(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("branchId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			httperr.CodeInvalidRequest, "Invalid branch ID format", nil)
		return
	}

	views, err := h.fleetQueries.ListCarsByBranch(c.Request.Context(), branchID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			httperr.CodeInternal, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCarViews(views))
}

// @Summary List branches
// @Description List every branch
// @Tags branches
// @Produce json
// @Success 200 {array} resdto.BranchResponse
// @Router /branches/get [get]
func (h *FleetHandler) Branches(c *gin.Context) {
	views, err := h.fleetQueries.ListBranches(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			httperr.CodeInternal, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBranchViews(views))
}
