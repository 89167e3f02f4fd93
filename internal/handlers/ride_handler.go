package handlers

import (
	"errors"

	"rideway/internal/models"
	"rideway/internal/services"
	"rideway/internal/utils"
	"rideway/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideHandler struct {
	rideService services.RideService
	debug       bool
}

func NewRideHandler(rideService services.RideService, debug bool) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		debug:       debug,
	}
}

// EstimateFare returns a quote without creating anything.
func (h *RideHandler) EstimateFare(c *gin.Context) {
	var request validators.EstimateFareRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateEstimateFare(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, toAPIErrors(errs))
		return
	}

	quote, err := h.rideService.EstimateFare(
		c.Request.Context(),
		toLocation(request.Pickup),
		toLocation(request.Drop),
		models.RideCategory(request.Category),
	)
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Fare estimated successfully", quote)
}

// BookRide creates a pending ride for the authenticated rider.
func (h *RideHandler) BookRide(c *gin.Context) {
	riderID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.BookRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookRide(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, toAPIErrors(errs))
		return
	}

	ride, err := h.rideService.BookRide(c.Request.Context(), riderID, &services.BookRideRequest{
		Pickup:   toLocation(request.Pickup),
		Drop:     toLocation(request.Drop),
		Category: models.RideCategory(request.Category),
		Notes:    request.Notes,
	})
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.CreatedResponse(c, "Ride booked successfully", ride)
}

// GetRide returns a single ride within the caller's visible scope.
func (h *RideHandler) GetRide(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	ride, err := h.rideService.GetRide(c.Request.Context(), callerID, models.UserType(currentUserType(c)), rideID)
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride retrieved successfully", ride)
}

// GetActiveRide returns the rider's current non-terminal ride.
func (h *RideHandler) GetActiveRide(c *gin.Context) {
	riderID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	ride, err := h.rideService.GetActiveRide(c.Request.Context(), riderID)
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Active ride retrieved successfully", ride)
}

// ListRides returns the rider's ride history, newest first.
func (h *RideHandler) ListRides(c *gin.Context) {
	riderID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	status := models.RideStatus(c.Query("status"))
	if status != "" && !isKnownStatus(status) {
		utils.BadRequestResponse(c, "Unknown ride status filter")
		return
	}

	params := utils.GetPaginationParams(c)
	rides, total, err := h.rideService.ListRides(c.Request.Context(), riderID, status, params)
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", gin.H{"rides": rides}, meta)
}

// UpdateDestination amends the drop location of an accepted or started ride.
func (h *RideHandler) UpdateDestination(c *gin.Context) {
	riderID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	var request validators.UpdateDestinationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUpdateDestination(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, toAPIErrors(errs))
		return
	}

	ride, err := h.rideService.UpdateDestination(c.Request.Context(), riderID, rideID, &services.UpdateDestinationRequest{
		NewDrop: toLocation(request.Drop),
	})
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Destination updated successfully", ride)
}

// CancelRide cancels a pending or accepted ride on behalf of its rider.
func (h *RideHandler) CancelRide(c *gin.Context) {
	riderID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	var request validators.CancelRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCancelRide(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, toAPIErrors(errs))
		return
	}

	ride, err := h.rideService.CancelRide(c.Request.Context(), riderID, rideID, &services.CancelRideRequest{
		Reason: request.Reason,
	})
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride cancelled successfully", ride)
}

// AcceptRide assigns the authenticated driver to a pending ride.
func (h *RideHandler) AcceptRide(c *gin.Context) {
	driverID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	ride, err := h.rideService.AcceptRide(c.Request.Context(), driverID, rideID)
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride accepted successfully", ride)
}

// StartRide marks an accepted ride as started.
func (h *RideHandler) StartRide(c *gin.Context) {
	driverID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	ride, err := h.rideService.StartRide(c.Request.Context(), driverID, rideID)
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride started successfully", ride)
}

// CompleteRide marks a started ride as completed.
func (h *RideHandler) CompleteRide(c *gin.Context) {
	driverID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride ID")
		return
	}

	ride, err := h.rideService.CompleteRide(c.Request.Context(), driverID, rideID)
	if err != nil {
		h.respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride completed successfully", ride)
}

func (h *RideHandler) respondRideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRideNotFound):
		utils.NotFoundResponse(c, "Ride")
	case errors.Is(err, services.ErrActiveRideConflict):
		utils.ConflictResponse(c, "You already have an active ride")
	case errors.Is(err, services.ErrRideNotModifiable):
		utils.UnprocessableResponse(c, "Ride cannot be modified in its current status")
	case errors.Is(err, services.ErrInvalidCategory):
		utils.BadRequestResponse(c, "Unknown ride category")
	default:
		utils.InternalServerErrorResponse(c, err, h.debug)
	}
}

func toLocation(req validators.LocationRequest) models.Location {
	return models.Location{
		Address: req.Address,
		Coordinates: models.GeoPoint{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
	}
}

func isKnownStatus(status models.RideStatus) bool {
	switch status {
	case models.RideStatusPending, models.RideStatusAccepted, models.RideStatusStarted,
		models.RideStatusCompleted, models.RideStatusCancelled:
		return true
	}
	return false
}
