package service

import (
	"time"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
)

const dateLayout = "2006-01-02"

type RestockService struct {
	repo repository.RestockRepository
	clk  *clock.Clock
}

func NewRestockService(repo repository.RestockRepository, clk *clock.Clock) *RestockService {
	return &RestockService{repo: repo, clk: clk}
}

func (s *RestockService) Track(userID, itemName string, daysUntilRefill int) (*model.RestockItem, error) {
	if itemName == "" {
		return nil, inputErrorf("Item name cannot be empty.")
	}
	if daysUntilRefill <= 0 {
		return nil, inputErrorf("Please provide a positive number of days!")
	}

	item := &model.RestockItem{
		UserID:             userID,
		ItemName:           itemName,
		RefillDate:         s.clk.NowLocal().AddDate(0, 0, daysUntilRefill).Format(dateLayout),
		DaysBetweenRefills: daysUntilRefill,
	}

	err := s.repo.Create(item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// MarkDone advances the refill date by the item's cadence, counted from today
// rather than from the stored date so a late restock does not shorten the
// next cycle.
func (s *RestockService) MarkDone(userID, itemName string) (*model.RestockItem, error) {
	item, err := s.repo.ByName(userID, itemName)
	if err != nil {
		return nil, err
	}

	next := s.clk.NowLocal().AddDate(0, 0, item.DaysBetweenRefills).Format(dateLayout)
	err = s.repo.SetRefillDate(userID, itemName, next)
	if err != nil {
		return nil, err
	}

	item.RefillDate = next
	return item, nil
}

func (s *RestockService) Items(userID string) ([]*model.RestockItem, error) {
	return s.repo.ForUser(userID)
}

func (s *RestockService) Untrack(userID, itemName string) error {
	return s.repo.Delete(userID, itemName)
}

// DueSoon returns items needing a restock in exactly leadDays days, used by
// the daily scan.
func (s *RestockService) DueSoon(now time.Time, leadDays int) ([]*model.RestockItem, error) {
	target := s.clk.ToLocal(now).AddDate(0, 0, leadDays).Format(dateLayout)
	return s.repo.DueOn(target)
}
