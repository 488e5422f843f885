package routes

import (
	"net/http"

	"unwind/auth"
	"unwind/blog"
	"unwind/booking"
	"unwind/invoice"
	"unwind/live"
	"unwind/mailer"
	"unwind/middleware"
	"unwind/profile"
	"unwind/ratelim"
	"unwind/rooms"

	"github.com/julienschmidt/httprouter"
)

func adminOnly(next httprouter.Handle) httprouter.Handle {
	return middleware.Chain(middleware.Authenticate, middleware.RequireRoles("admin"))(next)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/roompic/*filepath", http.Dir("static/roompic"))
	router.ServeFiles("/static/blogpic/*filepath", http.Dir("static/blogpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, mail *mailer.Mailer) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))

	router.POST("/api/auth/forgot-password", rl.Limit(auth.ForgotPassword(mail)))
	router.GET("/api/auth/reset-password/:otp", rl.Limit(auth.CheckResetOTP))
	router.POST("/api/auth/reset-password", rl.Limit(auth.ResetPassword))
	router.PUT("/api/auth/changepassword", middleware.Authenticate(auth.ChangePassword))
}

func AddProfileRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *booking.Service) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PATCH("/api/profile", middleware.Authenticate(profile.UpdateProfile))

	router.GET("/api/admin/users", adminOnly(profile.ListUsers))
	router.GET("/api/admin/counts", adminOnly(profile.DashboardCounts(svc)))
}

func AddRoomRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *booking.Service) {
	router.GET("/api/rooms", rooms.ListRooms(svc))
	router.GET("/api/rooms/:roomid", rooms.GetRoom)
	router.POST("/api/rooms", adminOnly(rooms.AddRoom))
	router.PUT("/api/rooms/:roomid", adminOnly(rooms.UpdateRoom))
	router.DELETE("/api/rooms/:roomid", adminOnly(rooms.DeleteRoom))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *booking.Service) {
	router.POST("/api/bookings/room/:rid", rl.Limit(middleware.Authenticate(svc.BookRoomHandler)))
	router.POST("/api/bookings/payment/:oid", rl.Limit(middleware.Authenticate(svc.PaymentStatusHandler)))
	router.PATCH("/api/bookings/:rbid/cancel", rl.Limit(middleware.Authenticate(svc.CancelHandler)))
	router.GET("/api/bookings/mine", middleware.Authenticate(svc.MyBookingsHandler))

	router.POST("/api/bookings/search", adminOnly(svc.SearchHandler))
	router.POST("/api/bookings/available", svc.AvailableRoomsHandler)
}

func AddBlogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/blogs", blog.ListBlogs)
	router.GET("/api/blogs/:blogid", blog.GetBlog)
	router.POST("/api/blogs", adminOnly(blog.CreateBlog))
	router.PUT("/api/blogs/:blogid", adminOnly(blog.UpdateBlog))
	router.DELETE("/api/blogs/:blogid", adminOnly(blog.DeleteBlog))
}

func AddInvoiceRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *booking.Service, mail *mailer.Mailer) {
	router.POST("/api/invoice/pdf", rl.Limit(middleware.Authenticate(invoice.DownloadHandler(svc))))
	router.POST("/api/invoice/email", rl.Limit(middleware.Authenticate(invoice.EmailHandler(svc, mail))))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/live/bookings", live.BookingsFeed(hub))
}
