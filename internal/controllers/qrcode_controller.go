package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"videogames-be/internal/service"
)

const qrCodeSize = 256

type QRCodeController struct {
	games   service.VideoGameService
	baseURL string
}

func NewQRCodeController(games service.VideoGameService, baseURL string) *QRCodeController {
	return &QRCodeController{
		games:   games,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GameURL is the public address of a video game resource.
func (qc *QRCodeController) GameURL(id int64) string {
	return qc.baseURL + "/api/video-games/" + strconv.FormatInt(id, 10)
}

// GenerateQRCode handles GET /api/video-games/:id/qrcode - returns a PNG
// encoding the game's public URL
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	game, err := qc.games.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	// Medium error recovery
	qrCode, err := qrcode.New(qc.GameURL(game.ID), qrcode.Medium)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code",
		})
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code image",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=video-game-"+strconv.FormatInt(game.ID, 10)+".png")
	c.Data(http.StatusOK, "image/png", pngData)
}
