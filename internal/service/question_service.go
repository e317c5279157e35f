package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: repo}
}

type QuestionRequest struct {
	Level       string   `json:"level" binding:"required"`
	Text        string   `json:"text" binding:"required"`
	Options     []string `json:"options" binding:"required,min=2"`
	Answer      string   `json:"answer" binding:"required"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty"`
	Active      *bool    `json:"active"`
}

func (s *QuestionService) validate(req QuestionRequest) error {
	valid := false
	for _, lv := range model.TestLevels {
		if req.Level == lv {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown level %q", req.Level)
	}
	for _, opt := range req.Options {
		if opt == req.Answer {
			return nil
		}
	}
	return fmt.Errorf("answer must be one of the options")
}

func (s *QuestionService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	opts, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}
	q := &model.Question{
		Level:       req.Level,
		Text:        req.Text,
		Options:     opts,
		Answer:      req.Answer,
		Explanation: req.Explanation,
		Difficulty:  req.Difficulty,
		Active:      true,
	}
	if req.Active != nil {
		q.Active = *req.Active
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	opts, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}
	q.Level = req.Level
	q.Text = req.Text
	q.Options = opts
	q.Answer = req.Answer
	q.Explanation = req.Explanation
	q.Difficulty = req.Difficulty
	if req.Active != nil {
		q.Active = *req.Active
	}
	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) ListForAdmin(page, limit int, level string) ([]model.Question, int64, error) {
	return s.QuestionRepo.ListForAdmin(page, limit, level)
}

// LevelPoolStatus reports how many active questions each band holds and
// whether the band can serve a full round.
type LevelPoolStatus struct {
	Level    string `json:"level"`
	Active   int64  `json:"active"`
	Required int    `json:"required"`
	Healthy  bool   `json:"healthy"`
}

func (s *QuestionService) PoolHealth(questionsPerLevel int) ([]LevelPoolStatus, error) {
	counts, err := s.QuestionRepo.CountActiveByLevel()
	if err != nil {
		return nil, err
	}
	statuses := make([]LevelPoolStatus, 0, len(model.TestLevels))
	for _, lv := range model.TestLevels {
		n := counts[lv]
		statuses = append(statuses, LevelPoolStatus{
			Level:    lv,
			Active:   n,
			Required: questionsPerLevel,
			Healthy:  n >= int64(questionsPerLevel),
		})
	}
	return statuses, nil
}
