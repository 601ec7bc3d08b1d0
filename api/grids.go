package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/beepath/service"
)

// GridController serves grid sessions.
type GridController struct {
	svc      *service.Service
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

// NewGridController initializes a GridController.
func NewGridController(svc *service.Service, log *logrus.Logger) *GridController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &GridController{
		svc: svc,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Register registers the grid routes.
func (gc *GridController) Register(route *gin.RouterGroup) {
	grids := route.Group("/grids")
	{
		grids.POST("", gc.create)
		grids.GET("/:id", gc.get)
		grids.DELETE("/:id", gc.delete)
		grids.GET("/:id/stats", gc.stats)
		grids.PUT("/:id/walls", gc.setWalls)
		grids.POST("/:id/walls/toggle", gc.toggleWall)
		grids.POST("/:id/walls/clear", gc.clearWalls)
		grids.POST("/:id/walls/fill", gc.fillWalls)
		grids.PUT("/:id/goal", gc.moveGoal)
		grids.POST("/:id/reset", gc.reset)
		grids.POST("/:id/search", gc.search)
		grids.POST("/:id/stop", gc.stop)
		grids.GET("/:id/stream", gc.stream)
	}
}

func (gc *GridController) create(ctx *gin.Context) {
	var req service.CreateRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	v, err := gc.svc.Create(ctx, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, v)
}

func (gc *GridController) get(ctx *gin.Context) {
	v, err := gc.svc.Get(ctx, ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, v)
}

func (gc *GridController) delete(ctx *gin.Context) {
	if err := gc.svc.Delete(ctx, ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (gc *GridController) stats(ctx *gin.Context) {
	st, err := gc.svc.Stats(ctx, ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, st)
}

func (gc *GridController) setWalls(ctx *gin.Context) {
	var req WallsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gc.respond(ctx, func() (service.View, error) {
		return gc.svc.SetWalls(ctx, ctx.Param("id"), req.Walls)
	})
}

func (gc *GridController) toggleWall(ctx *gin.Context) {
	var req CoordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gc.respond(ctx, func() (service.View, error) {
		return gc.svc.ToggleWall(ctx, ctx.Param("id"), req.coord())
	})
}

func (gc *GridController) clearWalls(ctx *gin.Context) {
	gc.respond(ctx, func() (service.View, error) {
		return gc.svc.ClearWalls(ctx, ctx.Param("id"))
	})
}

func (gc *GridController) fillWalls(ctx *gin.Context) {
	gc.respond(ctx, func() (service.View, error) {
		return gc.svc.FillWalls(ctx, ctx.Param("id"))
	})
}

func (gc *GridController) moveGoal(ctx *gin.Context) {
	var req CoordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gc.respond(ctx, func() (service.View, error) {
		return gc.svc.MoveGoal(ctx, ctx.Param("id"), req.coord())
	})
}

func (gc *GridController) reset(ctx *gin.Context) {
	var req service.CreateRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	gc.respond(ctx, func() (service.View, error) {
		return gc.svc.Reset(ctx, ctx.Param("id"), req)
	})
}

func (gc *GridController) search(ctx *gin.Context) {
	var req SearchRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	out, err := gc.svc.Search(ctx, ctx.Param("id"), algorithmOrDefault(req.Algorithm))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, out)
}

func (gc *GridController) stop(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, StopResponse{Stopped: gc.svc.Stop(ctx.Param("id"))})
}

// respond writes the view returned by fn or the mapped error.
func (gc *GridController) respond(ctx *gin.Context, fn func() (service.View, error)) {
	v, err := fn()
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, v)
}

func algorithmOrDefault(name string) string {
	if name == "" {
		return "astar"
	}
	return name
}
