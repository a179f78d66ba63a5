package server

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"
	"todoportal/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Service is the part of service.Service the HTTP layer drives.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)

	CreateTodo(ctx context.Context, req models.CreateTodoRequest) (models.Todo, error)
	MyTodos(ctx context.Context) ([]models.Todo, error)
	ToggleTodo(ctx context.Context, id string) (models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	ClientStats(ctx context.Context) (models.ClientStats, error)

	ListClients(ctx context.Context, page int) (service.Page[models.UserView], error)
	ClientTodos(ctx context.Context, clientID string, page int) (service.Page[models.Todo], error)
	AdminStats(ctx context.Context) (models.AdminStats, error)
}

type TodoAPI struct {
	httpSrv *http.Server
	svc     Service
	cfg     *Config
	metrics *metrics
}

func NewTodoAPI(svc Service, cfg *Config) *TodoAPI {
	if svc == nil {
		return nil
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.normalize()

	api := &TodoAPI{
		httpSrv: &http.Server{
			Addr:              cfg.ListenAddr(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		svc:     svc,
		cfg:     cfg,
		metrics: newMetrics(),
	}
	api.configRoutes()
	return api
}

func (api *TodoAPI) Start() error {
	if api.httpSrv == nil {
		return errors.ErrInternalServer
	}
	if err := api.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (api *TodoAPI) Shutdown(ctx context.Context) error {
	if api.httpSrv == nil {
		return nil
	}
	return api.httpSrv.Shutdown(ctx)
}

func (api *TodoAPI) configRoutes() {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(api.metrics.middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     api.cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Encoding", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(RateLimit(api.cfg.RateLimit, api.cfg.RateBurst))
	router.Use(GzipRequestDecompress(), GzipResponseCompress())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "использован некорректный HTTP-метод"})
	})
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrNotFound.Error()})
	})

	router.GET("/health", api.health)
	router.GET("/metrics", gin.WrapH(api.metrics.handler()))

	users := router.Group("/users")
	{
		users.POST("/register", api.register)
		users.POST("/login", api.login)
		users.POST("/logout", api.requireAuth(), api.logout)
		users.GET("/me", api.requireAuth(), api.me)
		users.PUT("/me", api.requireAuth(), api.updateProfile)
	}

	todos := router.Group("/todos", api.requireAuth())
	{
		todos.GET("", requireRole(models.RoleClient), api.listTodos)
		todos.POST("", requireRole(models.RoleClient), api.createTodo)
		todos.GET("/stats", requireRole(models.RoleClient), api.clientStats)
		todos.PATCH("/:todoID/toggle", api.toggleTodo)
		todos.DELETE("/:todoID", api.deleteTodo)
	}

	admin := router.Group("/admin", api.requireAuth(), requireRole(models.RoleAdmin))
	{
		admin.GET("/clients", api.listClients)
		admin.GET("/clients/:clientID/todos", api.clientTodos)
		admin.PATCH("/todos/:todoID/toggle", api.toggleTodo)
		admin.GET("/stats", api.adminStats)
	}

	api.httpSrv.Handler = router
}

func (api *TodoAPI) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (api *TodoAPI) register(ctx *gin.Context) {
	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "некорректные данные пользователя"})
		return
	}

	user, err := api.svc.Register(ctx.Request.Context(), req)
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "пользователь успешно создан",
		"user":    user.View(),
	})
}

func (api *TodoAPI) login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "некорректные данные запроса"})
		return
	}

	user, err := api.svc.Login(ctx.Request.Context(), req)
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}

	token, err := api.issueToken(user.ID)
	if err != nil {
		log.Printf("[ERROR] Не удалось подписать токен: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	api.setTokenCookie(ctx, token, api.cfg.TokenTTL)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "вход выполнен успешно",
		"token":   token,
		"user":    user.View(),
	})
}

func (api *TodoAPI) logout(ctx *gin.Context) {
	if err := api.svc.Logout(ctx.Request.Context()); err != nil {
		api.abortWithError(ctx, err)
		return
	}
	api.setTokenCookie(ctx, "", -time.Second)
	ctx.JSON(http.StatusOK, gin.H{"message": "выход выполнен"})
}

func (api *TodoAPI) me(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"user": currentUser(ctx).View()})
}

func (api *TodoAPI) updateProfile(ctx *gin.Context) {
	var req models.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	user, err := api.svc.UpdateProfile(ctx.Request.Context(), req)
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "профиль обновлён",
		"user":    user.View(),
	})
}

func (api *TodoAPI) listTodos(ctx *gin.Context) {
	todos, err := api.svc.MyTodos(ctx.Request.Context())
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (api *TodoAPI) createTodo(ctx *gin.Context) {
	var req models.CreateTodoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	todo, err := api.svc.CreateTodo(ctx.Request.Context(), req)
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"todo": todo})
}

func (api *TodoAPI) toggleTodo(ctx *gin.Context) {
	todo, err := api.svc.ToggleTodo(ctx.Request.Context(), ctx.Param("todoID"))
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (api *TodoAPI) deleteTodo(ctx *gin.Context) {
	if err := api.svc.DeleteTodo(ctx.Request.Context(), ctx.Param("todoID")); err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "задача успешно удалена"})
}

func (api *TodoAPI) clientStats(ctx *gin.Context) {
	stats, err := api.svc.ClientStats(ctx.Request.Context())
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (api *TodoAPI) listClients(ctx *gin.Context) {
	page, err := api.svc.ListClients(ctx.Request.Context(), pageParam(ctx))
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (api *TodoAPI) clientTodos(ctx *gin.Context) {
	page, err := api.svc.ClientTodos(ctx.Request.Context(), ctx.Param("clientID"), pageParam(ctx))
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (api *TodoAPI) adminStats(ctx *gin.Context) {
	stats, err := api.svc.AdminStats(ctx.Request.Context())
	if err != nil {
		api.abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"stats": stats})
}

// pageParam reads ?page=, anything unparsable is the first page.
func pageParam(ctx *gin.Context) int {
	p, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

func currentUser(ctx *gin.Context) models.User {
	v, _ := ctx.Get(contextUserKey)
	u, _ := v.(models.User)
	return u
}

// abortWithError maps service errors to HTTP statuses.
func (api *TodoAPI) abortWithError(ctx *gin.Context, err error) {
	var fe service.FieldErrors
	switch {
	case errors.As(err, &fe):
		status := http.StatusBadRequest
		msg := errors.ErrValidationFailed.Error()
		if fe.EmailInUse() {
			status = http.StatusConflict
			msg = errors.ErrEmailInUse.Error()
		}
		ctx.AbortWithStatusJSON(status, gin.H{"error": msg, "fields": fe})
	case errors.Is(err, errors.ErrInvalidCredentials):
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrInvalidCredentials.Error()})
	case errors.Is(err, errors.ErrNotAuthenticated):
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrNotAuthenticated.Error()})
	case errors.Is(err, errors.ErrForbidden):
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errors.ErrForbidden.Error()})
	case errors.Is(err, errors.ErrTodoNotFound), errors.Is(err, errors.ErrUserNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[ERROR] %s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
	}
}
