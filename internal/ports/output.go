package ports

import "overlayns/internal/types"

type ReportWriterPort interface {
	WriteLoadReport(path string, report types.LoadReport) error
}

type ReportReaderPort interface {
	ReadLoadReport(path string) (types.LoadReport, error)
}
