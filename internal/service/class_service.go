package service

import (
	"errors"
	"fmt"
	"time"

	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/logger"
	"hangul_edu_backend/pkg/mailer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClassService struct {
	ClassRepo       *repository.ClassRepository
	ApplicationRepo *repository.ApplicationRepository
	Mailer          mailer.Sender
}

func NewClassService(classRepo *repository.ClassRepository, appRepo *repository.ApplicationRepository, sender mailer.Sender) *ClassService {
	return &ClassService{
		ClassRepo:       classRepo,
		ApplicationRepo: appRepo,
		Mailer:          sender,
	}
}

func (s *ClassService) ListOpen() ([]model.Class, error) {
	return s.ClassRepo.ListOpen()
}

func (s *ClassService) GetClass(id string) (*model.Class, error) {
	class, err := s.ClassRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

type ApplyRequest struct {
	Name             string `json:"name" binding:"required,max=100"`
	Email            string `json:"email" binding:"required,email"`
	Country          string `json:"country" binding:"max=100"`
	Message          string `json:"message" binding:"max=2000"`
	PrivacyConsent   bool   `json:"privacyConsent" binding:"required"`
	AgeConsent       bool   `json:"ageConsent" binding:"required"`
	MarketingConsent bool   `json:"marketingConsent"`

	// Honeypot. Real clients never fill it.
	Website string `json:"website"`
}

// Apply files a pending application for an open class.
func (s *ClassService) Apply(classID string, req ApplyRequest) (*model.ClassApplication, error) {
	if req.Website != "" {
		logger.Log.Info("application honeypot tripped", zap.String("class_id", classID))
		return nil, util.ErrSpamDetected
	}

	class, err := s.GetClass(classID)
	if err != nil {
		return nil, err
	}
	if class.Status != model.ClassStatusOpen {
		return nil, util.ErrClassClosed
	}

	app := &model.ClassApplication{
		ClassID:          classID,
		Name:             req.Name,
		Email:            req.Email,
		Country:          req.Country,
		Message:          req.Message,
		PrivacyConsent:   req.PrivacyConsent,
		AgeConsent:       req.AgeConsent,
		MarketingConsent: req.MarketingConsent,
		Status:           model.ApplicationStatusPending,
	}
	if err := s.ApplicationRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

type ClassRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Schedule    string `json:"schedule"`
	TeacherName string `json:"teacherName"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
}

func (s *ClassService) CreateClass(req ClassRequest) (*model.Class, error) {
	status := req.Status
	if status == "" {
		status = model.ClassStatusOpen
	}
	if status != model.ClassStatusOpen && status != model.ClassStatusClosed {
		return nil, fmt.Errorf("invalid class status %q", req.Status)
	}
	class := &model.Class{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Schedule:    req.Schedule,
		TeacherName: req.TeacherName,
		Capacity:    req.Capacity,
		Status:      status,
	}
	if err := s.ClassRepo.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) UpdateClass(id string, req ClassRequest) (*model.Class, error) {
	class, err := s.GetClass(id)
	if err != nil {
		return nil, err
	}
	if req.Status != "" && req.Status != model.ClassStatusOpen && req.Status != model.ClassStatusClosed {
		return nil, fmt.Errorf("invalid class status %q", req.Status)
	}

	class.Title = req.Title
	class.Description = req.Description
	class.Level = req.Level
	class.Schedule = req.Schedule
	class.TeacherName = req.TeacherName
	class.Capacity = req.Capacity
	if req.Status != "" {
		class.Status = req.Status
	}
	if err := s.ClassRepo.Update(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) DeleteClass(id string) error {
	if _, err := s.GetClass(id); err != nil {
		return err
	}
	return s.ClassRepo.Delete(id)
}

func (s *ClassService) ListClassesForAdmin(page, limit int) ([]model.Class, int64, error) {
	return s.ClassRepo.ListForAdmin(page, limit)
}

func (s *ClassService) ListApplications(page, limit int, status, classID string) ([]model.ClassApplication, int64, error) {
	return s.ApplicationRepo.ListForAdmin(page, limit, status, classID)
}

// ApplicationSummary returns per-status counts so the console can show a
// review backlog at a glance. An empty classID covers all classes;
// statuses with no applications report zero.
func (s *ClassService) ApplicationSummary(classID string) (map[string]int64, error) {
	counts, err := s.ApplicationRepo.CountByStatus(classID)
	if err != nil {
		return nil, err
	}
	for _, status := range []string{model.ApplicationStatusPending, model.ApplicationStatusApproved, model.ApplicationStatusRejected} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

func (s *ClassService) GetApplication(id string) (*model.ClassApplication, error) {
	app, err := s.ApplicationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

// Decide approves or rejects a pending application and notifies the
// applicant by email. The decision is persisted before the send, so a
// mail failure leaves the record decided; the caller gets
// ErrEmailSendFailed and can retry the notification out of band.
func (s *ClassService) Decide(id string, approve bool, reason string) (*model.ClassApplication, error) {
	app, err := s.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if app.Status != model.ApplicationStatusPending {
		return nil, util.ErrApplicationDecided
	}

	class, err := s.GetClass(app.ClassID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if approve {
		app.Status = model.ApplicationStatusApproved
	} else {
		app.Status = model.ApplicationStatusRejected
	}
	app.Reason = reason
	app.DecidedAt = &now
	if err := s.ApplicationRepo.Update(app); err != nil {
		return nil, err
	}

	msg := decisionMail(app, class, approve)
	if err := s.Mailer.Send(msg); err != nil {
		logger.Log.Error("decision mail failed",
			zap.String("application_id", app.ID),
			zap.String("email", app.Email),
			zap.Error(err))
		return app, util.ErrEmailSendFailed
	}
	return app, nil
}

func decisionMail(app *model.ClassApplication, class *model.Class, approve bool) mailer.Message {
	var subject, body string
	if approve {
		subject = fmt.Sprintf("[한글 배움터] '%s' 수업 신청이 승인되었습니다", class.Title)
		body = fmt.Sprintf(
			"%s님, 안녕하세요.\n\n신청하신 '%s' 수업이 승인되었습니다.\n수업 일정: %s\n\n감사합니다.",
			app.Name, class.Title, class.Schedule)
	} else {
		subject = fmt.Sprintf("[한글 배움터] '%s' 수업 신청 결과 안내", class.Title)
		body = fmt.Sprintf(
			"%s님, 안녕하세요.\n\n아쉽게도 신청하신 '%s' 수업을 진행해 드리지 못하게 되었습니다.\n사유: %s\n\n감사합니다.",
			app.Name, class.Title, app.Reason)
	}
	return mailer.Message{To: app.Email, Subject: subject, Body: body}
}
