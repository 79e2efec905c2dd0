package server

import (
	"net/http"

	"taskboard/internal/handler"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type handlers struct {
	users       *handler.UserHandler
	boards      *handler.BoardHandler
	members     *handler.MemberHandler
	lists       *handler.ListHandler
	cards       *handler.CardHandler
	assignments *handler.AssignmentHandler
	comments    *handler.CommentHandler
	labels      *handler.LabelHandler
}

func registerRoutes(r *gin.Engine, h *handlers, requireAuth gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/register", h.users.Register)
	r.POST("/login", h.users.Login)
	r.POST("/refresh", h.users.Refresh)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(requireAuth)
	{
		authorized.POST("/logout", h.users.Logout)
		authorized.GET("/me", h.users.Me)
		authorized.PATCH("/me", h.users.UpdateMe)
		authorized.DELETE("/me", h.users.DeleteMe)
		authorized.GET("/me/cards", h.cards.GetAssigned)

		// Board routes
		authorized.POST("/boards", h.boards.Create)
		authorized.GET("/boards", h.boards.GetAll)
		authorized.GET("/boards/:id", h.boards.GetByID)
		authorized.PATCH("/boards/:id", h.boards.Update)
		authorized.DELETE("/boards/:id", h.boards.Delete)

		// Membership routes
		authorized.POST("/boards/:id/members", h.members.Add)
		authorized.GET("/boards/:id/members", h.members.GetAll)
		authorized.PATCH("/boards/:id/members/:user_id", h.members.UpdateRole)
		authorized.DELETE("/boards/:id/members/:user_id", h.members.Remove)
		authorized.DELETE("/boards/:id/membership", h.members.Leave)

		// List routes
		authorized.POST("/lists", h.lists.Create)
		authorized.GET("/boards/:id/lists", h.lists.GetAll)
		authorized.GET("/lists/:id", h.lists.GetByID)
		authorized.PATCH("/lists/:id", h.lists.Update)
		authorized.DELETE("/lists/:id", h.lists.Delete)

		// Card routes
		authorized.POST("/cards", h.cards.Create)
		authorized.GET("/lists/:id/cards", h.cards.GetByListID)
		authorized.GET("/cards/:id", h.cards.GetByID)
		authorized.PATCH("/cards/:id", h.cards.Update)
		authorized.DELETE("/cards/:id", h.cards.Delete)
		authorized.POST("/cards/:id/assignees", h.assignments.Assign)
		authorized.GET("/cards/:id/assignees", h.assignments.GetAssignees)
		authorized.DELETE("/cards/:id/assignees/:user_id", h.assignments.Unassign)
		authorized.GET("/cards/:id/labels", h.labels.GetCardLabels)
		authorized.POST("/cards/:id/labels/:label_id", h.labels.Attach)
		authorized.DELETE("/cards/:id/labels/:label_id", h.labels.Detach)

		// Comment routes
		authorized.POST("/comments", h.comments.Create)
		authorized.GET("/cards/:id/comments", h.comments.GetByCardID)
		authorized.GET("/comments/:id", h.comments.GetByID)
		authorized.PATCH("/comments/:id", h.comments.Update)
		authorized.DELETE("/comments/:id", h.comments.Delete)

		// Label routes
		authorized.POST("/labels", h.labels.Create)
		authorized.GET("/boards/:id/labels", h.labels.GetByBoardID)
		authorized.GET("/labels/:id", h.labels.GetByID)
		authorized.PATCH("/labels/:id", h.labels.Update)
		authorized.DELETE("/labels/:id", h.labels.Delete)
		authorized.GET("/labels/:id/cards", h.labels.GetCardsWithLabel)
	}
}
