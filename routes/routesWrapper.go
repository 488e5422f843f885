package routes

import (
	"unwind/booking"
	"unwind/live"
	"unwind/mailer"
	"unwind/ratelim"

	"github.com/julienschmidt/httprouter"
)

// Deps carries the shared collaborators the route groups need.
type Deps struct {
	Booking *booking.Service
	Mail    *mailer.Mailer
	Live    *live.Hub
}

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, deps Deps) {
	AddAuthRoutes(router, rateLimiter, deps.Mail)
	AddProfileRoutes(router, rateLimiter, deps.Booking)
	AddRoomRoutes(router, rateLimiter, deps.Booking)
	AddBookingRoutes(router, rateLimiter, deps.Booking)
	AddBlogRoutes(router, rateLimiter)
	AddInvoiceRoutes(router, rateLimiter, deps.Booking, deps.Mail)
	AddLiveRoutes(router, deps.Live)
	AddStaticRoutes(router)
}
