package routes

import (
	"rideway/internal/handlers"
	"rideway/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRideRoutes(api *gin.RouterGroup, rideHandler *handlers.RideHandler, jwtSecret string) {
	rides := api.Group("/rides")
	rides.Use(middleware.AuthRequired(jwtSecret))
	{
		rides.POST("/estimate", rideHandler.EstimateFare)
		rides.GET("/:id", rideHandler.GetRide)

		rider := rides.Group("")
		rider.Use(middleware.RiderRequired())
		{
			rider.POST("", rideHandler.BookRide)
			rider.GET("", rideHandler.ListRides)
			rider.GET("/active", rideHandler.GetActiveRide)
			rider.PUT("/:id/destination", rideHandler.UpdateDestination)
			rider.PUT("/:id/cancel", rideHandler.CancelRide)
		}

		driver := rides.Group("")
		driver.Use(middleware.DriverRequired())
		{
			driver.PUT("/:id/accept", rideHandler.AcceptRide)
			driver.PUT("/:id/start", rideHandler.StartRide)
			driver.PUT("/:id/complete", rideHandler.CompleteRide)
		}
	}
}
