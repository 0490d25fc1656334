package models

import (
	"time"
)

// DailyReport is the per-date header row. At most one report exists per
// calendar date; saving a date again replaces the report and all child rows.
type DailyReport struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Date           string    `gorm:"uniqueIndex;not null" json:"date"`
	Department     string    `json:"department"`
	Seller         string    `json:"seller"`
	PrevDayBalance float64   `gorm:"type:decimal(10,2);default:0.0" json:"prevDayBalance"`
	Cashless       float64   `gorm:"type:decimal(10,2);default:0.0" json:"cashless"`
	Remaining      float64   `gorm:"type:decimal(10,2);default:0.0" json:"remaining"`
	SafeCashless   float64   `gorm:"type:decimal(10,2);default:0.0" json:"safeCashless"`
	SafeTerminal   float64   `gorm:"type:decimal(10,2);default:0.0" json:"safeTerminal"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReportItem is one sold-product row. PositionNo is 1-based and kept
// contiguous by the client when rows are removed.
type ReportItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ReportID      uint    `gorm:"index;not null" json:"report_id"`
	PositionNo    int     `json:"position_no"`
	Volume        string  `json:"volume"`
	Bottle        string  `json:"bottle"`
	Color         string  `json:"color"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `gorm:"type:decimal(10,2)" json:"price"`
	Remark        string  `json:"remark"`
	CarryFromPrev bool    `gorm:"default:false" json:"carry_from_prev"`
}

type Task struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ReportID uint   `gorm:"index;not null" json:"report_id"`
	Text     string `json:"text"`
	Done     bool   `gorm:"default:false" json:"done"`
}

// TesterWriteOffItem records tester stock written off on the report's day,
// tracked separately from sales.
type TesterWriteOffItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ReportID uint    `gorm:"index;not null" json:"report_id"`
	Text     string  `json:"text"`
	Quantity float64 `gorm:"default:0" json:"quantity"`
}

func (TesterWriteOffItem) TableName() string {
	return "tester_writeoff_items"
}
