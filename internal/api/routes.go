package api

import (
	"github.com/askbridge/askbridge/internal/api/middleware"
	"github.com/askbridge/askbridge/internal/models"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/chat").
			To(handler.Chat).
			Doc("Answer a question through the fallback chain").
			Metadata(restfulspec.KeyOpenAPITags, []string{"chat"}).
			Reads(models.ChatRequest{}).
			Writes(models.ChatResponse{}).
			Returns(200, "OK", models.ChatResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/ingest").
			To(handler.Ingest).
			Doc("Ingest documents into the knowledge base").
			Metadata(restfulspec.KeyOpenAPITags, []string{"ingest"}).
			Reads(models.IngestRequest{}).
			Writes(models.IngestResponse{}).
			Returns(200, "OK", models.IngestResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/history/{conversation_id}").
			To(handler.History).
			Doc("Read conversation history").
			Metadata(restfulspec.KeyOpenAPITags, []string{"history"}).
			Param(ws.PathParameter("conversation_id", "Conversation identifier").DataType("string")).
			Param(ws.QueryParameter("limit", "Maximum entries to return (default: 50)").DataType("integer").Required(false)).
			Writes(HistoryResponse{}).
			Returns(200, "OK", HistoryResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.DELETE("/history/{conversation_id}").
			To(handler.ClearHistory).
			Doc("Delete conversation history").
			Metadata(restfulspec.KeyOpenAPITags, []string{"history"}).
			Param(ws.PathParameter("conversation_id", "Conversation identifier").DataType("string")).
			Returns(204, "No Content", nil).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/stats").
			To(handler.Stats).
			Doc("Knowledge base, resolution and history statistics").
			Metadata(restfulspec.KeyOpenAPITags, []string{"stats"}).
			Writes(StatsResponse{}).
			Returns(200, "OK", StatsResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
