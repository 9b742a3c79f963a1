package services

import (
	"context"

	"github.com/ukmstimbara/inventaris-api/internal/jobs"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
)

// StatsService aggregates the numbers for the admin dashboard
type StatsService struct {
	barangRepo     repository.BarangRepository
	peminjamanRepo repository.PeminjamanRepository
	userRepo       repository.UserRepository
	worker         *jobs.Worker
}

func NewStatsService(
	barangRepo repository.BarangRepository,
	peminjamanRepo repository.PeminjamanRepository,
	userRepo repository.UserRepository,
	worker *jobs.Worker,
) *StatsService {
	return &StatsService{
		barangRepo:     barangRepo,
		peminjamanRepo: peminjamanRepo,
		userRepo:       userRepo,
		worker:         worker,
	}
}

// DashboardStats is the aggregate served at the stats endpoint
type DashboardStats struct {
	Inventory  *repository.BarangStats     `json:"inventory"`
	Loans      *repository.PeminjamanStats `json:"loans"`
	TotalUsers int64                       `json:"total_users"`
	Worker     jobs.WorkerStats            `json:"worker"`
}

// Dashboard collects inventory, loan and user counts in one response
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	inventory, err := s.barangRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.peminjamanRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Inventory:  inventory,
		Loans:      loans,
		TotalUsers: totalUsers,
		Worker:     s.worker.GetStats(),
	}, nil
}
