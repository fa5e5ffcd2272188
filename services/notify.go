package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"avquotes-backend/models"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotifyService sends an SMS to the approver when a quote is submitted for
// approval. Delivery failures are logged and never fail the request.
type NotifyService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotifyService(db *gorm.DB) *NotifyService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotifyService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// NotifyApprovalRequested messages the approver about a pending quote.
func (s *NotifyService) NotifyApprovalRequested(approvalID uuid.UUID) {
	var approval models.Approval
	if err := s.db.First(&approval, "id = ?", approvalID).Error; err != nil {
		log.Printf("Approval %s: not found for notification: %v", approvalID, err)
		return
	}

	var approver models.User
	if err := s.db.First(&approver, "id = ?", approval.ApproverID).Error; err != nil {
		log.Printf("Approval %s: approver lookup failed: %v", approvalID, err)
		return
	}
	if approver.Phone == "" {
		log.Printf("Approval %s: approver %s has no phone, skipping SMS", approvalID, approver.Username)
		return
	}

	var quote models.Quote
	if err := s.db.First(&quote, "id = ?", approval.QuoteID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Approval %s: quote lookup failed: %v", approvalID, err)
		}
		return
	}

	message := fmt.Sprintf("Quote %s (%s) for %s is awaiting your approval",
		quote.QuoteNumber, quote.Name, quote.ClientName)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(approver.Phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send approval SMS to %s: %v", approver.Phone, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Approval SMS sent to %s, SID: %s", approver.Phone, *resp.Sid)
	} else {
		log.Printf("Approval SMS sent to %s, but no SID returned", approver.Phone)
	}
}
