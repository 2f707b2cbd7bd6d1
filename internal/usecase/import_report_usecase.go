package usecase

import (
	"context"
	"fmt"

	"idea-miner/internal/domain"
)

// ImportReportUsecase accepts an externally assembled report (for example
// one generated client-side against the same contract) and stores it
// unchanged after a shape check.
type ImportReportUsecase interface {
	Execute(ctx context.Context, report *domain.Report) (string, error)
}

type importReportUsecase struct {
	repo domain.ReportRepository
}

// NewImportReportUsecase wires the import path.
func NewImportReportUsecase(repo domain.ReportRepository) ImportReportUsecase {
	return &importReportUsecase{repo: repo}
}

func (u *importReportUsecase) Execute(ctx context.Context, report *domain.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is required")
	}
	if report.ID == "" || report.Query.Keyword == "" || !report.Query.Range.Valid() {
		return "", fmt.Errorf("invalid report shape")
	}
	if len(report.Ideas) > domain.MaxIdeasPerReport {
		return "", fmt.Errorf("too many ideas: %d", len(report.Ideas))
	}

	if err := u.repo.Insert(ctx, report); err != nil {
		return "", err
	}
	return report.ID, nil
}
