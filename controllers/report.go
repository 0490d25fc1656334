// controllers/report.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"parfumnotebook-backend/config"
	"parfumnotebook-backend/models"
	"parfumnotebook-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportItemInput defines the structure for one sold-product row
type ReportItemInput struct {
	PositionNo    int     `json:"position_no"`
	Volume        string  `json:"volume"`
	Bottle        string  `json:"bottle"`
	Color         string  `json:"color"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `json:"price"`
	Remark        string  `json:"remark"`
	CarryFromPrev bool    `json:"carry_from_prev"`
}

type TaskInput struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type TesterItemInput struct {
	Text     string  `json:"text"`
	Quantity float64 `json:"quantity"`
}

// SaveReportInput is the full-day payload. The client always sends the
// complete current state of all four entity groups.
type SaveReportInput struct {
	Date                string            `json:"date" binding:"required"`
	Department          string            `json:"department"`
	Seller              string            `json:"seller"`
	PrevDayBalance      float64           `json:"prevDayBalance"`
	Cashless            float64           `json:"cashless"`
	Remaining           float64           `json:"remaining"`
	SafeCashless        float64           `json:"safeCashless"`
	SafeTerminal        float64           `json:"safeTerminal"`
	Items               []ReportItemInput `json:"items"`
	Tasks               []TaskInput       `json:"tasks"`
	TesterWriteOffItems []TesterItemInput `json:"testerWriteOffItems"`
}

// SaveReport replaces the whole report for the payload's date: the previous
// report row and all its children are deleted and everything is reinserted
// from the payload, inside a single transaction.
func SaveReport(c *gin.Context) {
	var input SaveReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.IsDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Discard the existing report for this date, children first
	var existing models.DailyReport
	err := tx.Where("date = ?", input.Date).First(&existing).Error
	if err == nil {
		if err := tx.Where("report_id = ?", existing.ID).Delete(&models.ReportItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}
		if err := tx.Where("report_id = ?", existing.ID).Delete(&models.Task{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing tasks")
			return
		}
		if err := tx.Where("report_id = ?", existing.ID).Delete(&models.TesterWriteOffItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing tester items")
			return
		}
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to replace report")
			return
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	report := models.DailyReport{
		Date:           input.Date,
		Department:     input.Department,
		Seller:         input.Seller,
		PrevDayBalance: input.PrevDayBalance,
		Cashless:       input.Cashless,
		Remaining:      input.Remaining,
		SafeCashless:   input.SafeCashless,
		SafeTerminal:   input.SafeTerminal,
	}

	if err := tx.Create(&report).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create report")
		return
	}

	if len(input.Items) > 0 {
		items := make([]models.ReportItem, 0, len(input.Items))
		for _, it := range input.Items {
			items = append(items, models.ReportItem{
				ReportID:      report.ID,
				PositionNo:    it.PositionNo,
				Volume:        it.Volume,
				Bottle:        it.Bottle,
				Color:         it.Color,
				Quantity:      it.Quantity,
				Price:         it.Price,
				Remark:        it.Remark,
				CarryFromPrev: it.CarryFromPrev,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save items")
			return
		}
	}

	if len(input.Tasks) > 0 {
		tasks := make([]models.Task, 0, len(input.Tasks))
		for _, t := range input.Tasks {
			tasks = append(tasks, models.Task{
				ReportID: report.ID,
				Text:     t.Text,
				Done:     t.Done,
			})
		}
		if err := tx.Create(&tasks).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save tasks")
			return
		}
	}

	if len(input.TesterWriteOffItems) > 0 {
		testers := make([]models.TesterWriteOffItem, 0, len(input.TesterWriteOffItems))
		for _, t := range input.TesterWriteOffItems {
			testers = append(testers, models.TesterWriteOffItem{
				ReportID: report.ID,
				Text:     t.Text,
				Quantity: t.Quantity,
			})
		}
		if err := tx.Create(&testers).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save tester items")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// GetReportByDate returns the report aggregate for ?date=YYYY-MM-DD
func GetReportByDate(c *gin.Context) {
	date := c.Query("date")

	var report models.DailyReport
	if err := config.DB.Where("date = ?", date).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	items, tasks, testers, err := loadReportChildren(report.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":              report,
		"items":               items,
		"tasks":               tasks,
		"testerWriteOffItems": testers,
	})
}

// ExportReportCSV streams the CSV document for /reports/:id/export/csv
func ExportReportCSV(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Не знайдено")
		return
	}

	var report models.DailyReport
	if err := config.DB.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Не знайдено")
		} else {
			c.String(http.StatusInternalServerError, "Database error")
		}
		return
	}

	items, tasks, testers, err := loadReportChildren(report.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	csv := utils.BuildReportCSV(report, items, tasks, testers)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.csv", report.Date))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// loadReportChildren fetches the three child collections: items ordered by
// position, tasks and tester rows in insertion order. Slices are non-nil so
// empty groups serialize as [] rather than null.
func loadReportChildren(reportID uint) ([]models.ReportItem, []models.Task, []models.TesterWriteOffItem, error) {
	items := []models.ReportItem{}
	if err := config.DB.Where("report_id = ?", reportID).Order("position_no").Find(&items).Error; err != nil {
		return nil, nil, nil, err
	}

	tasks := []models.Task{}
	if err := config.DB.Where("report_id = ?", reportID).Order("id").Find(&tasks).Error; err != nil {
		return nil, nil, nil, err
	}

	testers := []models.TesterWriteOffItem{}
	if err := config.DB.Where("report_id = ?", reportID).Order("id").Find(&testers).Error; err != nil {
		return nil, nil, nil, err
	}

	return items, tasks, testers, nil
}
