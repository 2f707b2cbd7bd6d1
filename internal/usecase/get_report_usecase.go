package usecase

import (
	"context"
	"fmt"

	"idea-miner/internal/domain"
)

// GetReportUsecase returns a previously stored report verbatim.
type GetReportUsecase interface {
	Execute(ctx context.Context, reportID string) (*domain.Report, error)
}

type getReportUsecase struct {
	repo domain.ReportRepository
}

// NewGetReportUsecase wires the read path.
func NewGetReportUsecase(repo domain.ReportRepository) GetReportUsecase {
	return &getReportUsecase{repo: repo}
}

func (u *getReportUsecase) Execute(ctx context.Context, reportID string) (*domain.Report, error) {
	if reportID == "" {
		return nil, fmt.Errorf("report id is required")
	}
	return u.repo.GetByID(ctx, reportID)
}
