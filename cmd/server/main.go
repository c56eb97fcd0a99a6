package main

import (
	"os"
	"strings"

	"github.com/benbeisheim/movegen-backend/internal/config"
	"github.com/benbeisheim/movegen-backend/internal/controller"
	"github.com/benbeisheim/movegen-backend/internal/middleware"
	"github.com/benbeisheim/movegen-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// Initialize services
	boardManager := service.NewBoardManager()
	boardService := service.NewBoardService(boardManager)

	app := newApp(cfg, boardService)

	log.Infof("HTTP listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}

func newApp(cfg config.Config, boardService *service.BoardService) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ","),
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.ClientIDHeader,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize controllers
	boardController := controller.NewBoardController(boardService)
	wsController := controller.NewWebSocketController(boardService)

	// Set up WebSocket routes
	app.Use("/ws", middleware.EnsureClientID())
	app.Get("/ws/boards/:boardId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.WSBufferSize,
		WriteBufferSize: cfg.WSBufferSize,
		Origins:         cfg.Origins(),
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsureClientID())

	boards := api.Group("/boards")
	boards.Post("/", boardController.CreateBoard)
	boards.Get("/:boardId", boardController.GetBoardState)
	boards.Delete("/:boardId", boardController.DeleteBoard)
	boards.Post("/:boardId/reset", boardController.ResetBoard)
	boards.Put("/:boardId/fen", boardController.LoadFEN)
	boards.Get("/:boardId/squares/:square", boardController.GetPiece)
	boards.Put("/:boardId/squares/:square", boardController.PutPiece)
	boards.Delete("/:boardId/squares/:square", boardController.DeletePiece)
	boards.Get("/:boardId/squares/:square/moves", boardController.PieceMoves)
	boards.Get("/:boardId/sides/:color/moves", boardController.SideMoves)

	return app
}
