package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

func (a ReportFileAdapter) WriteLoadReport(path string, report types.LoadReport) error {
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create report directory").
				WithCause(err)
		}
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode load report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write load report").
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) ReadLoadReport(path string) (types.LoadReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LoadReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("load report not found").
			WithCause(err)
	}
	var report types.LoadReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.LoadReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid load report format").
			WithCause(err)
	}
	if report.Namespace == "" {
		return types.LoadReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("load report missing namespace")
	}
	return report, nil
}

var (
	_ ports.ReportWriterPort = ReportFileAdapter{}
	_ ports.ReportReaderPort = ReportFileAdapter{}
)
