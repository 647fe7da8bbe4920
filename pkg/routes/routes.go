package pkg

import (
	"context"
	"net/http"
	"time"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/gilberthappi/isange-pro-be/internal/blog"
	"github.com/gilberthappi/isange-pro-be/internal/cases"
	"github.com/gilberthappi/isange-pro-be/internal/config"
	"github.com/gilberthappi/isange-pro-be/internal/event"
	"github.com/gilberthappi/isange-pro-be/internal/followup"
	"github.com/gilberthappi/isange-pro-be/internal/notification"
	"github.com/gilberthappi/isange-pro-be/pkg/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

var AppModules = fx.Module("app",
	fx.Provide(config.NewAppConfig),
	fx.Provide(config.NewLogger),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewMailer),
	fx.Provide(config.NewS3Store),
	fx.Provide(newTokenManager),
	fx.Provide(auth.NewUserRepository),
	fx.Provide(cases.NewCaseRepository),
	fx.Provide(blog.NewBlogRepository),
	fx.Provide(event.NewEventRepository),
	fx.Provide(followup.NewFollowUpRepository),
	fx.Provide(notification.NewDispatcher),
	fx.Provide(newCaseNotifier),
	fx.Provide(newBlogNotifier),
	fx.Provide(newCaseUploader),
	fx.Provide(newBlogUploader),
	fx.Provide(newEventUploader),
	fx.Provide(auth.NewUserService),
	fx.Provide(cases.NewCaseService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(cases.NewCaseHandler),
	fx.Provide(blog.NewBlogHandler),
	fx.Provide(event.NewEventHandler),
	fx.Provide(followup.NewFollowUpHandler),
	fx.Provide(NewEchoServer),
	fx.Invoke(RegisterRoutes))

func newTokenManager(cfg *config.AppConfig) *auth.TokenManager {
	return auth.NewTokenManager([]byte(cfg.JWTKey), tokenTTL)
}

func newCaseNotifier(d *notification.Dispatcher) cases.Notifier { return d }
func newBlogNotifier(d *notification.Dispatcher) blog.Notifier  { return d }

func newCaseUploader(s *config.S3Store) cases.Uploader { return s }
func newBlogUploader(s *config.S3Store) blog.Uploader  { return s }
func newEventUploader(s *config.S3Store) event.Uploader { return s }

func NewEchoServer(lc fx.Lifecycle, cfg *config.AppConfig, log *zap.SugaredLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	addr := ":" + cfg.Port
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("server starting", "addr", addr)
			go func() {
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("server shutting down")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func RegisterRoutes(
	e *echo.Echo,
	tokens *auth.TokenManager,
	users *auth.UserRepository,
	authHandler *auth.AuthHandler,
	caseHandler *cases.CaseHandler,
	blogHandler *blog.BlogHandler,
	eventHandler *event.EventHandler,
	followUpHandler *followup.FollowUpHandler,
) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to Isange Pro API"})
	})
	e.GET("/docs", func(c echo.Context) error {
		type route struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		}
		var listing []route
		for _, r := range e.Routes() {
			listing = append(listing, route{Method: r.Method, Path: r.Path})
		}
		return c.JSON(http.StatusOK, listing)
	})

	api := e.Group("/api/v1")
	authed := middleware.JWTMiddleware(tokens)
	admin := middleware.RequireRole(users, auth.RoleAdmin)
	rib := middleware.RequireRole(users, auth.RoleRIB)
	hospital := middleware.RequireRole(users, auth.RoleHospital)
	agent := middleware.RequireRole(users, auth.RoleAgent)
	doctor := middleware.RequireRole(users, auth.RoleDoctor)

	user := api.Group("/user")
	user.POST("/signup", authHandler.Signup)
	user.POST("/login", authHandler.Login)
	user.POST("/forgotPassword", authHandler.ForgotPassword)
	user.POST("/resetPassword", authHandler.ResetPassword)
	user.POST("/changePassword", authHandler.ChangePassword, authed)
	user.GET("/getAllClients", authHandler.GetAllClients, authed, admin)
	user.DELETE("/deleteClient/:id", authHandler.DeleteClient, authed, admin)
	user.PUT("/changeUserRole/:id", authHandler.ChangeUserRole, authed, admin)
	user.POST("/createAgent", authHandler.CreateAgent, authed, admin)
	user.POST("/createDoctor", authHandler.CreateDoctor, authed, admin)
	user.GET("/getAllAgents", authHandler.GetAllAgents, authed, rib)
	user.DELETE("/deleteAgent/:id", authHandler.DeleteAgent, authed, rib)
	user.GET("/getAllDoctors", authHandler.GetAllDoctors, authed, hospital)
	user.DELETE("/deleteDoctor/:id", authHandler.DeleteDoctor, authed, hospital)

	caseGroup := api.Group("/case", authed)
	caseGroup.POST("/create", caseHandler.CreateCase)
	caseGroup.PUT("/userUpdateCase/:id", caseHandler.UpdateCase)
	caseGroup.PUT("/adminUpdateCaseToRib/:id", caseHandler.AssignToRIB, admin)
	caseGroup.PUT("/adminUpdatesCaseToHospital/:id", caseHandler.AssignToHospital, admin)
	caseGroup.PUT("/RIBAcceptReject/:id", caseHandler.RIBAcceptReject, rib)
	caseGroup.PUT("/hospitalAcceptReject/:id", caseHandler.HospitalAcceptReject, hospital)
	caseGroup.PUT("/RIBUpdateCase/:id", caseHandler.RIBUpdateProgress, agent)
	caseGroup.PUT("/hospitalUpdateCase/:id", caseHandler.HospitalUpdateProgress, doctor)
	caseGroup.GET("/getAllCases", caseHandler.GetAll)
	caseGroup.GET("/getCaseById/:id", caseHandler.GetByID)
	caseGroup.GET("/getAllCasesUser", caseHandler.GetMine)
	caseGroup.GET("/getCasesAssignedToRIB", caseHandler.GetAssignedToRIB, rib)
	caseGroup.GET("/getCasesAssignedToHospital", caseHandler.GetAssignedToHospital, hospital)
	caseGroup.GET("/getCasesByRiskLevel", caseHandler.GetByRiskLevel, admin)
	caseGroup.GET("/getEmergencyCases", caseHandler.GetEmergencies, admin)
	caseGroup.PUT("/emergency/:id", caseHandler.UpdateToEmergency, admin)
	caseGroup.GET("/getCaseCounts", caseHandler.GetCounts, admin)
	caseGroup.DELETE("/deleteCase/:id", caseHandler.DeleteByID, admin)
	caseGroup.DELETE("/deleteAll", caseHandler.DeleteAll, admin)

	blogGroup := api.Group("/blog")
	blogGroup.POST("/create", blogHandler.Create, authed, admin)
	blogGroup.GET("/getAllBlog", blogHandler.GetAll)
	blogGroup.GET("/getBlogById/:id", blogHandler.GetByID)
	blogGroup.PUT("/adminUpdateBlog/:id", blogHandler.Update, authed, admin)
	blogGroup.DELETE("/deleteBlog/:id", blogHandler.Delete, authed, admin)
	blogGroup.GET("/getBlogCounts", blogHandler.GetCounts, authed)

	eventGroup := api.Group("/event")
	eventGroup.POST("/create", eventHandler.Create, authed, admin)
	eventGroup.GET("/getAllEvent", eventHandler.GetAll)
	eventGroup.GET("/getEventById/:id", eventHandler.GetByID)
	eventGroup.PUT("/adminUpdateEvent/:id", eventHandler.Update, authed, admin)
	eventGroup.DELETE("/deleteEvent/:id", eventHandler.Delete, authed, admin)
	eventGroup.GET("/getEventCounts", eventHandler.GetCounts, authed)

	follow := api.Group("/follow", authed)
	follow.POST("", followUpHandler.Create)
	follow.GET("", followUpHandler.GetAll)
	follow.GET("/:id", followUpHandler.GetByID)
	follow.PUT("/:id", followUpHandler.Update)
	follow.DELETE("/:id", followUpHandler.Delete, admin)
}
