package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HarshwardhanZalte/AIDRA/orchestrator"
	"github.com/HarshwardhanZalte/AIDRA/pipeline"
)

// sessionHeader carries the caller's opaque session id. A request without it
// is sessionless: the pipeline runs but nothing is remembered.
const sessionHeader = "X-Session-ID"

// AnalyzeImage handles POST /api/aidra/analyze. Multipart form with an
// "image" file and an optional "country" field.
func AnalyzeImage(c *gin.Context, orc *orchestrator.Orchestrator) {
	requestID := uuid.NewString()
	c.Header("X-Request-ID", requestID)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": pipeline.KindInvalidImage, "error": "missing image file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": pipeline.KindInvalidImage, "error": "unreadable image file"})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": pipeline.KindInvalidImage, "error": "unreadable image file"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(imageBytes)
	}

	req := orchestrator.Request{
		Image:     imageBytes,
		MimeType:  mimeType,
		Country:   c.DefaultPostForm("country", "IN"),
		SessionID: c.GetHeader(sessionHeader),
	}

	report, err := orc.Analyze(c.Request.Context(), req)
	if err != nil {
		kind := pipeline.KindOf(err)
		log.Printf("handlers: analyze failed request=%s session=%q kind=%s: %v", requestID, req.SessionID, kind, err)
		c.JSON(statusForKind(kind), gin.H{"kind": kind, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"report":     report,
	})
}

func statusForKind(kind pipeline.Kind) int {
	switch kind {
	case pipeline.KindInvalidImage:
		return http.StatusBadRequest
	case pipeline.KindSchemaValidation, pipeline.KindModelUnavailable:
		return http.StatusBadGateway
	case pipeline.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
