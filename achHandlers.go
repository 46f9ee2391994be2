package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/garnishedge/garnishedge_backend/ach"
	"github.com/garnishedge/garnishedge_backend/config"
	"github.com/garnishedge/garnishedge_backend/export"
	"github.com/garnishedge/garnishedge_backend/models"
	"github.com/garnishedge/garnishedge_backend/models/reports"
	"github.com/garnishedge/garnishedge_backend/utils"
	"github.com/garnishedge/garnishedge_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// generateAchFileRequest is the POST body for a file-generation run.
// Orders arrive pre-resolved; the handler does no amount computation.
type generateAchFileRequest struct {
	OrdersData     []ach.Order `json:"orders_data" binding:"required"`
	PayDate        string      `json:"pay_date"` // YYYY-MM-DD, defaults to today
	FileIdModifier string      `json:"file_id_modifier"`
	BatchNumber    int         `json:"batch_number"`
	ExportFormat   string      `json:"export_format"`
	AgencyPayee    string      `json:"agency_payee"`
	StoreFile      *bool       `json:"store_file"`
}

func generateAchFileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		spanCtx, span := tracer.Start(c.Request.Context(), "ach.generate_file")
		defer span.End()

		var req generateAchFileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "invalid request body",
					"error":   utils.ProcessValidationErrors(err),
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "invalid request body",
				"error":   err.Error(),
			})
			return
		}

		format, err := export.ParseFormat(req.ExportFormat)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "invalid export format",
				"error":   err.Error(),
			})
			return
		}

		var payDate time.Time
		if req.PayDate != "" {
			payDate, err = time.Parse("2006-01-02", req.PayDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "invalid pay_date, expected YYYY-MM-DD",
					"error":   err.Error(),
				})
				return
			}
		}

		storeFile := true
		if req.StoreFile != nil {
			storeFile = *req.StoreFile
		}

		result, err := workflow.GenerateAchFile(spanCtx, workflow.GenerateRequest{
			Orders:         req.OrdersData,
			PayDate:        payDate,
			FileIdModifier: req.FileIdModifier,
			BatchNumber:    req.BatchNumber,
			Format:         format,
			AgencyPayee:    req.AgencyPayee,
			StoreFile:      storeFile,
			GeneratedBy:    generatedBy(c),
		})
		if err != nil {
			span.RecordError(err)
			var verr *ach.ValidationError
			switch {
			case errors.As(err, &verr):
				c.JSON(http.StatusBadRequest, gin.H{
					"success":        false,
					"message":        "payment order validation failed",
					"error":          verr.Messages(),
					"failed_records": verr.Failed,
				})
			case errors.Is(err, ach.ErrNoOrders):
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"message": "no payment orders to process",
					"error":   err.Error(),
				})
			case errors.Is(err, ach.ErrModifiersExhausted):
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"message": "all file id modifiers are in use for this pay date",
					"error":   err.Error(),
				})
			case errors.Is(err, ach.ErrModifierTaken):
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"message": "the requested file id modifier is already reserved for this pay date",
					"error":   err.Error(),
				})
			default:
				config.LogError(logger, "achHandlers.go", "generateAchFileHandler", "GenerateAchFile", req.PayDate, err)
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "failed to generate ACH file",
					"error":   err.Error(),
				})
			}
			return
		}

		if len(result.Stats.SkippedCaseIds) > 0 {
			c.Header("X-Skipped-Records", strconv.Itoa(len(result.Stats.SkippedCaseIds)))
		}
		c.Header("X-File-Id-Modifier", result.FileIdModifier)
		c.Header("X-Batch-Number", strconv.Itoa(result.BatchNumber))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
		c.Data(http.StatusOK, result.ContentType, result.Content)
	}
}

func listAchFilesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		filter, err := achFileFilterFromQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "invalid filter",
				"error":   err.Error(),
			})
			return
		}

		files, err := models.ListAchFiles(c.Request.Context(), filter)
		if err != nil {
			config.LogError(logger, "achHandlers.go", "listAchFilesHandler", "ListAchFiles", filter, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "failed to list ACH files",
				"error":   err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("%d file(s)", len(files)),
			"data":    files,
		})
	}
}

func exportAchRegisterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		filter, err := achFileFilterFromQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "invalid filter",
				"error":   err.Error(),
			})
			return
		}

		files, err := models.ListAchFiles(c.Request.Context(), filter)
		if err != nil {
			config.LogError(logger, "achHandlers.go", "exportAchRegisterHandler", "ListAchFiles", filter, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "failed to list ACH files",
				"error":   err.Error(),
			})
			return
		}

		book, err := reports.BuildAchRegister(files)
		if err != nil {
			config.LogError(logger, "achHandlers.go", "exportAchRegisterHandler", "BuildAchRegister", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "failed to build register workbook",
				"error":   err.Error(),
			})
			return
		}

		fileName := "ach_register_" + time.Now().Format("20060102_150405") + ".xlsx"
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := book.Write(c.Writer); err != nil {
			config.LogError(logger, "achHandlers.go", "exportAchRegisterHandler", "book.Write", fileName, err)
		}
	}
}

func generatedBy(c *gin.Context) string {
	if username, ok := utils.GetUsernameFromContext(c.Request.Context()); ok {
		return username
	}
	return "system"
}

func achFileFilterFromQuery(c *gin.Context) (models.AchFileFilter, error) {
	var filter models.AchFileFilter
	if v := c.Query("pay_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("invalid pay_date, expected YYYY-MM-DD: %w", err)
		}
		filter.PayDate = &d
	}
	filter.BatchId = c.Query("batch_id")
	// "format" is the documented name; "file_format" matches the column and
	// is accepted for compatibility.
	filter.FileFormat = c.Query("format")
	if filter.FileFormat == "" {
		filter.FileFormat = c.Query("file_format")
	}
	return filter, nil
}
