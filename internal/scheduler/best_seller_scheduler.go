package scheduler

import (
	"time"

	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const (
	bestSellerCount  = 8
	bestSellerWindow = 30 * 24 * time.Hour
)

// BestSellerScheduler recomputes the best-selling product flags every
// night from delivered order volume over a trailing window.
type BestSellerScheduler struct {
	cron        *cron.Cron
	productRepo repository.ProductRepository
}

func NewBestSellerScheduler(productRepo repository.ProductRepository) *BestSellerScheduler {
	return &BestSellerScheduler{
		cron:        cron.New(),
		productRepo: productRepo,
	}
}

func (s *BestSellerScheduler) Start() error {
	// Nightly at 03:00, when traffic is lowest
	_, err := s.cron.AddFunc("0 3 * * *", s.Run)
	if err != nil {
		logger.Error("Failed to add cron job for best seller refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Best seller scheduler started (daily at 3:00 AM)", nil)
	return nil
}

// Run executes one refresh immediately. Exposed so the job can be
// triggered at startup and from tests.
func (s *BestSellerScheduler) Run() {
	logger.Info("Starting scheduled best seller refresh", nil)

	since := time.Now().Add(-bestSellerWindow)
	if err := s.productRepo.RefreshBestSellers(bestSellerCount, since); err != nil {
		logger.Error("Failed to refresh best sellers from scheduler", err)
		return
	}

	logger.Info("Best seller refresh completed", nil)
}

func (s *BestSellerScheduler) Stop() {
	logger.Info("Stopping best seller scheduler...", nil)
	s.cron.Stop()
	logger.Info("Best seller scheduler stopped", nil)
}
