package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"parking-lot-backend/internal/mw"
	"parking-lot-backend/internal/parking"
)

// RouterOptions carries the tunables the router needs from configuration.
type RouterOptions struct {
	RateLimitPerSec float64
	RateBurst       int
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(coordinator *parking.Coordinator, db *gorm.DB, webpushOptions *webpush.Options, opts RouterOptions) *gin.Engine {
	r := gin.Default()
	r.Use(mw.RequestID())

	handler := NewHandler(coordinator, db, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), opts.RateBurst)

	// Responses of read endpoints are cached briefly; any successful
	// mutation flushes the cache so reads never trail a state change.
	cacheStore := cache.New(opts.CacheTTL, 10*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	api.Use(mw.Invalidate(cacheStore))
	{
		api.POST("/parking-lots", handler.CreateLot)
		api.POST("/slots/create", handler.AddSlots)
		api.DELETE("/slots/delete", handler.RemoveSlot)

		api.POST("/cars/register", handler.RegisterVehicle)
		api.POST("/cars/park", handler.ParkVehicle)
		api.POST("/cars/leave", handler.LeaveVehicle)

		api.GET("/parking-lot/status", caching, handler.GetStatus)
		api.GET("/cars/parked", caching, handler.PlatesBySize)
		api.GET("/spaces/parked", caching, handler.SlotsBySize)
		api.GET("/slots/contiguous", handler.FindContiguous)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
