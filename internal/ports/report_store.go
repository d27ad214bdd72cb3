package ports

import "github.com/aalvaropc/skein/internal/domain"

// ReportStore persists evaluation reports.
type ReportStore interface {
	SaveReport(report domain.Report) (id string, err error)
}
