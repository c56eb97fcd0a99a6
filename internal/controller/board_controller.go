package controller

import (
	"errors"

	"github.com/benbeisheim/movegen-backend/internal/middleware"
	"github.com/benbeisheim/movegen-backend/internal/model"
	"github.com/benbeisheim/movegen-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type BoardController struct {
	boardService *service.BoardService
}

func NewBoardController(boardService *service.BoardService) *BoardController {
	return &BoardController{boardService: boardService}
}

type createBoardRequest struct {
	Standard bool `json:"standard"`
}

type fenRequest struct {
	FEN string `json:"fen"`
}

type pieceRequest struct {
	Color string `json:"color"`
	Type  string `json:"type"`
}

type moveResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Promotion model.PieceType `json:"promotion,omitempty"`
	Notation  string          `json:"notation"`
}

func toMoveResponses(moves []model.Move) []moveResponse {
	out := make([]moveResponse, 0, len(moves))
	for _, m := range moves {
		out = append(out, moveResponse{
			From:      m.Origin.String(),
			To:        m.Destination.String(),
			Promotion: m.Promotion,
			Notation:  m.String(),
		})
	}
	return out
}

// errorStatus maps service and model errors onto HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrBoardNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrBoardExists):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidPosition),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrInvalidPiece),
		errors.Is(err, model.ErrInvalidFEN):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (bc *BoardController) CreateBoard(c *fiber.Ctx) error {
	var req createBoardRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	boardID, err := bc.boardService.CreateBoard(req.Standard)
	if err != nil {
		return respondError(c, err)
	}
	log.Debugf("client %s created board %s", middleware.ClientID(c), boardID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Board created",
		"board_id": boardID,
	})
}

func (bc *BoardController) GetBoardState(c *fiber.Ctx) error {
	state, err := bc.boardService.GetBoardState(c.Params("boardId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) DeleteBoard(c *fiber.Ctx) error {
	if err := bc.boardService.DeleteBoard(c.Params("boardId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (bc *BoardController) ResetBoard(c *fiber.Ctx) error {
	boardID := c.Params("boardId")
	if err := bc.boardService.ResetBoard(boardID); err != nil {
		return respondError(c, err)
	}
	return bc.GetBoardState(c)
}

func (bc *BoardController) LoadFEN(c *fiber.Ctx) error {
	var req fenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := bc.boardService.LoadFEN(c.Params("boardId"), req.FEN); err != nil {
		return respondError(c, err)
	}
	return bc.GetBoardState(c)
}

func (bc *BoardController) GetPiece(c *fiber.Ctx) error {
	square := c.Params("square")
	piece, err := bc.boardService.GetPiece(c.Params("boardId"), square)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"piece":  piece,
	})
}

func (bc *BoardController) PutPiece(c *fiber.Ctx) error {
	var req pieceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := bc.boardService.AddPiece(c.Params("boardId"), c.Params("square"), req.Color, req.Type); err != nil {
		return respondError(c, err)
	}
	return bc.GetBoardState(c)
}

func (bc *BoardController) DeletePiece(c *fiber.Ctx) error {
	if err := bc.boardService.RemovePiece(c.Params("boardId"), c.Params("square")); err != nil {
		return respondError(c, err)
	}
	return bc.GetBoardState(c)
}

func (bc *BoardController) PieceMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	moves, err := bc.boardService.PieceMoves(c.Params("boardId"), square)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  toMoveResponses(moves),
	})
}

func (bc *BoardController) SideMoves(c *fiber.Ctx) error {
	color := c.Params("color")
	moves, err := bc.boardService.SideMoves(c.Params("boardId"), color)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"color": color,
		"moves": toMoveResponses(moves),
	})
}
