package handlers

import (
	"net/http"

	"github.com/akolanti/EsgAPI/internal/api"
	"github.com/akolanti/EsgAPI/internal/config"
)

// GetIndexStatsHandler godoc
// @Summary      Get vector index stats
// @Description  Returns the collection name and how many chunks are indexed.
// @Tags         Index
// @Produce      json
// @Success      200  {object}  api.IndexStatsResponse  "Collection point count"
// @Failure      502  {object}  api.JobResponse         "Vector database unreachable"
// @Router       /index/stats [get]
func GetIndexStatsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		points, err := handlerInstance.vectorDB.CountPoints(r.Context(), config.EmbeddingDBName)
		if err != nil {
			logRH.Error("Error counting points", "err", err)
			WriteErrorResponse(w, http.StatusBadGateway, "", "Vector database unreachable")
			return
		}
		writeJsonResponse(w, http.StatusOK, api.IndexStatsResponse{
			Collection: config.EmbeddingDBName,
			Points:     points,
		})
	}
}

// DeleteIndexHandler godoc
// @Summary      Reset the vector index
// @Description  Drops and recreates the collection. Crawled and ingested content must be re-indexed afterwards.
// @Tags         Index
// @Success      204  "Index reset"
// @Failure      502  {object}  api.JobResponse  "Vector database unreachable"
// @Router       /index [delete]
func DeleteIndexHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		if err := handlerInstance.vectorDB.Reset(r.Context(), config.EmbeddingDBName); err != nil {
			logRH.Error("Error resetting index", "err", err)
			WriteErrorResponse(w, http.StatusBadGateway, "", "Vector database unreachable")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
