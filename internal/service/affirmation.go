package service

import (
	"github.com/Sneethan/gntle-habits/internal/repository"
)

type AffirmationService struct {
	repo repository.AffirmationRepository
	tone string
}

func NewAffirmationService(repo repository.AffirmationRepository, tone string) *AffirmationService {
	return &AffirmationService{repo: repo, tone: tone}
}

// Random returns an affirmation in the configured tone, never an error the
// caller has to care about.
func (s *AffirmationService) Random() string {
	affirmation, err := s.repo.Random(s.tone)
	if err != nil {
		return "Great job! 🌟"
	}
	return affirmation.Message
}
