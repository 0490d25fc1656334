// services/summary_service.go
package services

import (
	"fmt"
	"log"
	"os"

	"parfumnotebook-backend/models"
	"parfumnotebook-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// SummaryService texts the owner the day's totals every evening, so the shop
// report does not have to be opened to know how the day went.
type SummaryService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
	to     string
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &SummaryService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("SUMMARY_SMS_FROM"),
		to:   os.Getenv("SUMMARY_SMS_TO"),
	}
}

// Configured reports whether Twilio credentials and both phone numbers are
// present; the scheduler is only started when they are.
func (s *SummaryService) Configured() bool {
	return os.Getenv("TWILIO_ACCOUNT_SID") != "" &&
		os.Getenv("TWILIO_AUTH_TOKEN") != "" &&
		utils.ValidatePhone(s.from) &&
		utils.ValidatePhone(s.to)
}

func (s *SummaryService) StartScheduler() {
	spec := os.Getenv("SUMMARY_CRON")
	if spec == "" {
		spec = "0 21 * * *" // every day at 9 PM, after closing
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, s.SendDailySummary); err != nil {
		log.Printf("Invalid SUMMARY_CRON %q: %v", spec, err)
		return
	}

	c.Start()
	log.Println("Daily summary scheduler started")
}

func (s *SummaryService) SendDailySummary() {
	date := utils.Today()

	var report models.DailyReport
	if err := s.db.Where("date = ?", date).First(&report).Error; err != nil {
		log.Printf("No report saved for %s, skipping summary", date)
		return
	}

	var items []models.ReportItem
	if err := s.db.Where("report_id = ?", report.ID).Find(&items).Error; err != nil {
		log.Printf("Failed to load items for %s: %v", date, err)
		return
	}

	var testerCount int64
	s.db.Model(&models.TesterWriteOffItem{}).Where("report_id = ?", report.ID).Count(&testerCount)

	body := fmt.Sprintf("Звіт %s: продажі %.2f грн, позицій %d, тестерів списано %d",
		date, utils.ItemsTotal(items), len(items), testerCount)

	if err := s.sendSMS(body); err != nil {
		log.Printf("Failed to send daily summary: %v", err)
		return
	}

	log.Printf("Daily summary for %s sent to %s", date, s.to)
}

func (s *SummaryService) sendSMS(body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
