package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prathamdarmwal/ragscope/internal/dataset"
	"github.com/prathamdarmwal/ragscope/internal/harness"
)

type compareRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListStrategies(c *gin.Context) {
	reg, err := s.resources.Registry(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategies": reg.Names()})
}

func (s *Server) handleDatasetInfo(c *gin.Context) {
	ds, err := s.resources.Dataset(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_samples": ds.Len()})
}

func (s *Server) handleSample(c *gin.Context) {
	ds, err := s.resources.Dataset(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	question, idx, err := ds.Sample()
	if err != nil {
		if errors.Is(err, dataset.ErrEmptyDataset) {
			respondError(c, http.StatusNotFound, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question": question,
		"index":    idx,
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	reg, err := s.resources.Registry(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	rs, err := s.dispatcher.Dispatch(c.Request.Context(), req.Query, reg)
	if err != nil {
		if errors.Is(err, harness.ErrInvalidQuery) {
			respondError(c, http.StatusUnprocessableEntity, err)
			return
		}
		// A failed dispatch leaves the previous record untouched.
		respondError(c, http.StatusBadGateway, err)
		return
	}

	record := harness.BuildRecord(strings.TrimSpace(req.Query), rs)
	s.setLastRecord(record)

	if s.store != nil {
		if _, err := s.store.SaveComparison(c.Request.Context(), record); err != nil {
			// History is best-effort; the comparison itself succeeded.
			log.Printf("api: save comparison: %v", err)
		}
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) handleExport(c *gin.Context) {
	record := s.lastRecord()
	if record == nil {
		respondError(c, http.StatusNotFound, errors.New("no comparison to export"))
		return
	}

	payload, err := record.Encode()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := harness.ExportFilename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, harness.ExportMIMEType, payload)
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusNotFound, errors.New("history is not enabled"))
		return
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	list, err := s.store.ListComparisons(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparisons": list})
}

func respondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}
