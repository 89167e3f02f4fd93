package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rideway/internal/models"
	"rideway/internal/services"
	"rideway/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubRideService struct {
	estimateFn func(pickup, drop models.Location, category models.RideCategory) (*models.FareQuote, error)
	bookFn     func(riderID primitive.ObjectID, req *services.BookRideRequest) (*models.Ride, error)
	getFn      func(rideID primitive.ObjectID) (*models.Ride, error)
	cancelFn   func(rideID primitive.ObjectID) (*models.Ride, error)
}

func (s *stubRideService) EstimateFare(ctx context.Context, pickup, drop models.Location, category models.RideCategory) (*models.FareQuote, error) {
	return s.estimateFn(pickup, drop, category)
}

func (s *stubRideService) BookRide(ctx context.Context, riderID primitive.ObjectID, req *services.BookRideRequest) (*models.Ride, error) {
	return s.bookFn(riderID, req)
}

func (s *stubRideService) GetRide(ctx context.Context, callerID primitive.ObjectID, callerType models.UserType, rideID primitive.ObjectID) (*models.Ride, error) {
	return s.getFn(rideID)
}

func (s *stubRideService) GetActiveRide(ctx context.Context, riderID primitive.ObjectID) (*models.Ride, error) {
	return nil, services.ErrRideNotFound
}

func (s *stubRideService) ListRides(ctx context.Context, riderID primitive.ObjectID, status models.RideStatus, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	return nil, 0, nil
}

func (s *stubRideService) UpdateDestination(ctx context.Context, riderID, rideID primitive.ObjectID, req *services.UpdateDestinationRequest) (*models.Ride, error) {
	return nil, services.ErrRideNotModifiable
}

func (s *stubRideService) CancelRide(ctx context.Context, riderID, rideID primitive.ObjectID, req *services.CancelRideRequest) (*models.Ride, error) {
	return s.cancelFn(rideID)
}

func (s *stubRideService) AcceptRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error) {
	return nil, services.ErrRideNotFound
}

func (s *stubRideService) StartRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error) {
	return nil, services.ErrRideNotFound
}

func (s *stubRideService) CompleteRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error) {
	return nil, services.ErrRideNotFound
}

func testRouter(svc services.RideService, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewRideHandler(svc, false)

	router := gin.New()
	authed := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_type", "rider")
	}

	router.POST("/rides/estimate", handler.EstimateFare)
	router.POST("/rides", authed, handler.BookRide)
	router.GET("/rides/:id", authed, handler.GetRide)
	router.PUT("/rides/:id/cancel", authed, handler.CancelRide)
	router.PUT("/rides/:id/destination", authed, handler.UpdateDestination)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope utils.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}

	return rec, envelope
}

func estimateBody() map[string]interface{} {
	return map[string]interface{}{
		"pickup": map[string]interface{}{
			"latitude":  19.0760,
			"longitude": 72.8777,
			"address":   "Dadar Station, Mumbai",
		},
		"drop": map[string]interface{}{
			"latitude":  19.0896,
			"longitude": 72.8656,
			"address":   "Mahim Bay, Mumbai",
		},
		"category": "economy",
	}
}

func TestEstimateFareEndpoint(t *testing.T) {
	svc := &stubRideService{
		estimateFn: func(pickup, drop models.Location, category models.RideCategory) (*models.FareQuote, error) {
			return &models.FareQuote{
				BaseFare:         85.55,
				GST:              15.40,
				TotalFare:        100.95,
				DistanceKM:       2.37,
				FarePerKM:        15,
				Category:         category,
				EstimatedMinutes: 5,
				Currency:         "INR",
			}, nil
		},
	}

	router := testRouter(svc, primitive.NewObjectID())
	rec, envelope := doJSON(t, router, http.MethodPost, "/rides/estimate", estimateBody())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !envelope.Success {
		t.Errorf("success = false: %s", envelope.Message)
	}
	if envelope.Data == nil {
		t.Error("expected quote data in envelope")
	}
}

func TestEstimateFareEndpointValidation(t *testing.T) {
	svc := &stubRideService{
		estimateFn: func(pickup, drop models.Location, category models.RideCategory) (*models.FareQuote, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}

	body := estimateBody()
	body["category"] = "rickshaw"

	router := testRouter(svc, primitive.NewObjectID())
	rec, envelope := doJSON(t, router, http.MethodPost, "/rides/estimate", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if envelope.Success {
		t.Error("success = true for invalid input")
	}
	if len(envelope.Errors) == 0 {
		t.Error("expected field errors in envelope")
	}
}

func TestGetRideEndpointNotFound(t *testing.T) {
	svc := &stubRideService{
		getFn: func(rideID primitive.ObjectID) (*models.Ride, error) {
			return nil, services.ErrRideNotFound
		},
	}

	router := testRouter(svc, primitive.NewObjectID())
	rec, envelope := doJSON(t, router, http.MethodGet, "/rides/"+primitive.NewObjectID().Hex(), nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if envelope.Success {
		t.Error("success = true for missing ride")
	}
}

func TestGetRideEndpointBadID(t *testing.T) {
	svc := &stubRideService{
		getFn: func(rideID primitive.ObjectID) (*models.Ride, error) {
			t.Fatal("service must not be called for a malformed id")
			return nil, nil
		},
	}

	router := testRouter(svc, primitive.NewObjectID())
	rec, _ := doJSON(t, router, http.MethodGet, "/rides/not-an-id", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBookRideEndpointConflict(t *testing.T) {
	svc := &stubRideService{
		bookFn: func(riderID primitive.ObjectID, req *services.BookRideRequest) (*models.Ride, error) {
			return nil, services.ErrActiveRideConflict
		},
	}

	body := estimateBody()
	router := testRouter(svc, primitive.NewObjectID())
	rec, envelope := doJSON(t, router, http.MethodPost, "/rides", body)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if envelope.Success {
		t.Error("success = true for conflicting booking")
	}
}

func TestCancelRideEndpointNotModifiable(t *testing.T) {
	svc := &stubRideService{
		cancelFn: func(rideID primitive.ObjectID) (*models.Ride, error) {
			return nil, services.ErrRideNotModifiable
		},
	}

	router := testRouter(svc, primitive.NewObjectID())
	rec, _ := doJSON(t, router, http.MethodPut, "/rides/"+primitive.NewObjectID().Hex()+"/cancel",
		map[string]interface{}{"reason": "changed my mind"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
